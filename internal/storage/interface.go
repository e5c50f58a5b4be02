package storage

import (
	"context"

	"github.com/pagetribe/sleepwell/internal"
)

// RecordRepository is the persistence boundary for sleep records. The
// core needs nothing beyond insert-or-replace, read, read-all and
// delete; ListRecords returns newest-first by creation time.
type RecordRepository interface {
	SaveRecord(ctx context.Context, rec *internal.SleepRecord) error
	GetRecord(ctx context.Context, id string) (*internal.SleepRecord, error)
	ListRecords(ctx context.Context) ([]internal.SleepRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	Close() error
}
