package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pagetribe/sleepwell/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) SaveRecord(ctx context.Context, rec *internal.SleepRecord) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO sleep_records
		(id, filed_date, bedtime, bedtime_mood, evening_notes, wakeup, wakeup_mood, fuzziness, woke_up_during_dream, morning_notes, sleep_duration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
		filed_date = EXCLUDED.filed_date, bedtime = EXCLUDED.bedtime, bedtime_mood = EXCLUDED.bedtime_mood,
		evening_notes = EXCLUDED.evening_notes, wakeup = EXCLUDED.wakeup, wakeup_mood = EXCLUDED.wakeup_mood,
		fuzziness = EXCLUDED.fuzziness, woke_up_during_dream = EXCLUDED.woke_up_during_dream,
		morning_notes = EXCLUDED.morning_notes, sleep_duration = EXCLUDED.sleep_duration`,
		rec.ID, rec.FiledDate, rec.Bedtime, rec.BedtimeMood, rec.EveningNotes, rec.Wakeup,
		rec.WakeupMood, rec.Fuzziness, rec.WokeUpDuringDream, rec.MorningNotes, rec.SleepDuration, rec.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert sleep record: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetRecord(ctx context.Context, id string) (*internal.SleepRecord, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, filed_date, bedtime, bedtime_mood, evening_notes, wakeup, wakeup_mood, fuzziness, woke_up_during_dream, morning_notes, sleep_duration, created_at
		FROM sleep_records WHERE id = $1`, id)
	var r internal.SleepRecord
	err := row.Scan(&r.ID, &r.FiledDate, &r.Bedtime, &r.BedtimeMood, &r.EveningNotes, &r.Wakeup,
		&r.WakeupMood, &r.Fuzziness, &r.WokeUpDuringDream, &r.MorningNotes, &r.SleepDuration, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrRecordNotFound
		}
		p.logger.Errorf("failed to scan sleep record: %v", err)
		return nil, err
	}
	return &r, nil
}

func (p *PostgresStorage) ListRecords(ctx context.Context) ([]internal.SleepRecord, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, filed_date, bedtime, bedtime_mood, evening_notes, wakeup, wakeup_mood, fuzziness, woke_up_during_dream, morning_notes, sleep_duration, created_at
		FROM sleep_records ORDER BY created_at DESC`)
	if err != nil {
		p.logger.Errorf("failed to query sleep records: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := []internal.SleepRecord{}
	for rows.Next() {
		var r internal.SleepRecord
		err := rows.Scan(&r.ID, &r.FiledDate, &r.Bedtime, &r.BedtimeMood, &r.EveningNotes, &r.Wakeup,
			&r.WakeupMood, &r.Fuzziness, &r.WokeUpDuringDream, &r.MorningNotes, &r.SleepDuration, &r.CreatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan sleep record: %v", err)
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (p *PostgresStorage) DeleteRecord(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM sleep_records WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete sleep record: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrRecordNotFound
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- Compile-time assertions ---
var _ RecordRepository = (*PostgresStorage)(nil)
