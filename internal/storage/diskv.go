package storage

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/pagetribe/sleepwell/internal"
	"github.com/peterbourgon/diskv/v3"
)

// DiskvStorage keeps one JSON value per record in a string-keyed
// durable store, keyed by record id.
type DiskvStorage struct {
	d      *diskv.Diskv
	logger internal.Logger
}

func NewDiskvStorage(basePath string, logger internal.Logger) (*DiskvStorage, error) {
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(s string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &DiskvStorage{d: d, logger: logger}, nil
}

func (s *DiskvStorage) read(key string) (*internal.SleepRecord, error) {
	val, err := s.d.Read(key)
	if err != nil {
		return nil, err
	}
	var sr storedRecord
	if err := json.Unmarshal(val, &sr); err != nil {
		return nil, err
	}
	rec := sr.normalize()
	if rec.ID == "" {
		rec.ID = key
	}
	return rec, nil
}

func (s *DiskvStorage) SaveRecord(ctx context.Context, rec *internal.SleepRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.d.Write(rec.ID, data); err != nil {
		s.logger.Errorf("failed to write sleep record %s: %v", rec.ID, err)
		return err
	}
	return nil
}

func (s *DiskvStorage) GetRecord(ctx context.Context, id string) (*internal.SleepRecord, error) {
	if !s.d.Has(id) {
		return nil, internal.ErrRecordNotFound
	}
	return s.read(id)
}

func (s *DiskvStorage) ListRecords(ctx context.Context) ([]internal.SleepRecord, error) {
	records := []internal.SleepRecord{}
	for key := range s.d.Keys(ctx.Done()) {
		rec, err := s.read(key)
		if err != nil {
			// A single corrupt value must not take down the whole
			// history view.
			s.logger.Errorf("failed to read sleep record %s: %v", key, err)
			continue
		}
		records = append(records, *rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *DiskvStorage) DeleteRecord(ctx context.Context, id string) error {
	if !s.d.Has(id) {
		return internal.ErrRecordNotFound
	}
	return s.d.Erase(id)
}

func (s *DiskvStorage) Close() error {
	return nil
}

// --- Compile-time assertions ---
var _ RecordRepository = (*DiskvStorage)(nil)
