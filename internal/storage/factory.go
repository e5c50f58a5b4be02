package storage

import (
	"fmt"

	"github.com/pagetribe/sleepwell/internal"
	"github.com/pagetribe/sleepwell/internal/config"
)

// NewRecordRepository builds the repository selected by
// STORAGE_BACKEND.
func NewRecordRepository(cfg *config.Config, logger internal.Logger) (RecordRepository, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStorage(cfg.RecordsFile, logger)
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLitePath, logger)
	case "diskv":
		return NewDiskvStorage(cfg.DiskvPath, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.DBType)
	}
}
