package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pagetribe/sleepwell/internal"
)

type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		logger.Errorf("failed to open sqlite database: %v", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Errorf("failed to connect to sqlite database: %v", err)
		return nil, err
	}

	s := &SQLiteStorage{db: db, logger: logger}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sleep_records (
			id TEXT PRIMARY KEY,
			filed_date TEXT NOT NULL,
			bedtime TEXT NOT NULL DEFAULT '',
			bedtime_mood INTEGER NOT NULL DEFAULT 0 CHECK(bedtime_mood >= 0 AND bedtime_mood <= 5),
			evening_notes TEXT NOT NULL DEFAULT '',
			wakeup TEXT NOT NULL DEFAULT '',
			wakeup_mood INTEGER NOT NULL DEFAULT 0 CHECK(wakeup_mood >= 0 AND wakeup_mood <= 5),
			fuzziness INTEGER NOT NULL DEFAULT 0 CHECK(fuzziness >= 0 AND fuzziness <= 5),
			woke_up_during_dream BOOLEAN,
			morning_notes TEXT NOT NULL DEFAULT '',
			sleep_duration TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sleep_records_created_at ON sleep_records(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sleep_records_filed_date ON sleep_records(filed_date)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			s.logger.Errorf("failed to initialize sqlite schema: %v", err)
			return err
		}
	}
	return nil
}

func (s *SQLiteStorage) SaveRecord(ctx context.Context, rec *internal.SleepRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO sleep_records
		(id, filed_date, bedtime, bedtime_mood, evening_notes, wakeup, wakeup_mood, fuzziness, woke_up_during_dream, morning_notes, sleep_duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FiledDate, rec.Bedtime, rec.BedtimeMood, rec.EveningNotes, rec.Wakeup,
		rec.WakeupMood, rec.Fuzziness, dreamValue(rec.WokeUpDuringDream), rec.MorningNotes, rec.SleepDuration, rec.CreatedAt)
	if err != nil {
		s.logger.Errorf("failed to upsert sleep record: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) GetRecord(ctx context.Context, id string) (*internal.SleepRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, filed_date, bedtime, bedtime_mood, evening_notes, wakeup, wakeup_mood, fuzziness, woke_up_during_dream, morning_notes, sleep_duration, created_at
		FROM sleep_records WHERE id = ?`, id)
	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrRecordNotFound
		}
		s.logger.Errorf("failed to scan sleep record: %v", err)
		return nil, err
	}
	return rec, nil
}

func (s *SQLiteStorage) ListRecords(ctx context.Context) ([]internal.SleepRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, filed_date, bedtime, bedtime_mood, evening_notes, wakeup, wakeup_mood, fuzziness, woke_up_during_dream, morning_notes, sleep_duration, created_at
		FROM sleep_records ORDER BY created_at DESC`)
	if err != nil {
		s.logger.Errorf("failed to query sleep records: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := []internal.SleepRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			s.logger.Errorf("failed to scan sleep record: %v", err)
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sleep_records WHERE id = ?`, id)
	if err != nil {
		s.logger.Errorf("failed to delete sleep record: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return internal.ErrRecordNotFound
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func scanRecord(scan func(dest ...any) error) (*internal.SleepRecord, error) {
	var r internal.SleepRecord
	var dream sql.NullBool
	err := scan(&r.ID, &r.FiledDate, &r.Bedtime, &r.BedtimeMood, &r.EveningNotes, &r.Wakeup,
		&r.WakeupMood, &r.Fuzziness, &dream, &r.MorningNotes, &r.SleepDuration, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if dream.Valid {
		v := dream.Bool
		r.WokeUpDuringDream = &v
	}
	return &r, nil
}

func dreamValue(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return *b
}

// --- Compile-time assertions ---
var _ RecordRepository = (*SQLiteStorage)(nil)
