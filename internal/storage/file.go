package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/pagetribe/sleepwell/internal"
)

// FileStorage keeps all records in memory and debounces writes of the
// whole collection to a single JSON file. Read-then-full-rewrite is
// fine here: one user, no concurrent writers.
type FileStorage struct {
	records     map[string]*internal.SleepRecord
	index       []*internal.SleepRecord // newest first by CreatedAt
	mu          sync.RWMutex
	recordsFile string
	saveChan    chan struct{}
	shutdown    chan struct{}
	saveDelay   time.Duration
	logger      internal.Logger
}

func NewFileStorage(recordsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		records:     make(map[string]*internal.SleepRecord),
		recordsFile: recordsFile,
		saveChan:    make(chan struct{}, 1),
		shutdown:    make(chan struct{}),
		saveDelay:   500 * time.Millisecond,
		logger:      logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load sleep records: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.recordsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var stored []*storedRecord
	if err := json.NewDecoder(file).Decode(&stored); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sr := range stored {
		rec := sr.normalize()
		s.records[rec.ID] = rec
		s.index = append(s.index, rec)
	}
	sort.SliceStable(s.index, func(i, j int) bool {
		return s.index[i].CreatedAt.After(s.index[j].CreatedAt)
	})

	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) save() error {
	s.mu.RLock()
	records := make([]*internal.SleepRecord, len(s.index))
	copy(records, s.index)
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.recordsFile, records)
}

func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving sleep records: %v", err)
			}
		case <-s.shutdown:
			return
		}
	}
}

// Close stops the save worker and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdown)
	return s.save()
}

func (s *FileStorage) SaveRecord(ctx context.Context, rec *internal.SleepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *rec
	if existing, ok := s.records[stored.ID]; ok {
		// Replace in place; creation time is immutable so the index
		// position still holds.
		*existing = stored
	} else {
		r := &stored
		s.records[r.ID] = r
		inserted := false
		for i, other := range s.index {
			if other.CreatedAt.Before(r.CreatedAt) {
				s.index = append(s.index[:i], append([]*internal.SleepRecord{r}, s.index[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted {
			s.index = append(s.index, r)
		}
	}

	select {
	case s.saveChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) GetRecord(ctx context.Context, id string) (*internal.SleepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, internal.ErrRecordNotFound
	}
	out := *rec
	return &out, nil
}

func (s *FileStorage) ListRecords(ctx context.Context) ([]internal.SleepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]internal.SleepRecord, len(s.index))
	for i, r := range s.index {
		records[i] = *r
	}
	return records, nil
}

func (s *FileStorage) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return internal.ErrRecordNotFound
	}
	delete(s.records, id)
	for i, r := range s.index {
		if r.ID == id {
			s.index = append(s.index[:i], s.index[i+1:]...)
			break
		}
	}

	select {
	case s.saveChan <- struct{}{}:
	default:
	}
	return nil
}

// --- Compile-time assertions ---
var _ RecordRepository = (*FileStorage)(nil)
