package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pagetribe/sleepwell/internal"
	"github.com/pagetribe/sleepwell/internal/storage"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// EveningRequest carries the bedtime-side fields of a new record.
// Wakeup is the planned wake time from the evening form; it does not
// mark the record completed.
type EveningRequest struct {
	Bedtime      string `json:"bedtime" validate:"omitempty,datetime=15:04"`
	BedtimeMood  int    `json:"bedtimeMood" validate:"omitempty,gte=1,lte=5"`
	EveningNotes string `json:"eveningNotes,omitempty"`
	Wakeup       string `json:"wakeup,omitempty" validate:"omitempty,datetime=15:04"`
}

// MorningRequest completes an in-progress record.
type MorningRequest struct {
	Wakeup            string `json:"wakeup" validate:"omitempty,datetime=15:04"`
	WakeupMood        int    `json:"wakeupMood" validate:"required,gte=1,lte=5"`
	Fuzziness         int    `json:"fuzziness" validate:"omitempty,gte=1,lte=5"`
	WokeUpDuringDream *bool  `json:"wokeUpDuringDream,omitempty"`
	MorningNotes      string `json:"morningNotes,omitempty"`
}

// EditRequest is a partial update of any record. Numeric fields are
// pointers so that "not submitted" (nil) and "cleared" (explicit 0) are
// distinguishable; both fall back to the stored value, which may itself
// still be empty.
type EditRequest struct {
	Bedtime           string  `json:"bedtime,omitempty" validate:"omitempty,datetime=15:04"`
	Wakeup            string  `json:"wakeup,omitempty" validate:"omitempty,datetime=15:04"`
	BedtimeMood       *int    `json:"bedtimeMood,omitempty" validate:"omitempty,gte=0,lte=5"`
	WakeupMood        *int    `json:"wakeupMood,omitempty" validate:"omitempty,gte=0,lte=5"`
	Fuzziness         *int    `json:"fuzziness,omitempty" validate:"omitempty,gte=0,lte=5"`
	WokeUpDuringDream *bool   `json:"wokeUpDuringDream,omitempty"`
	EveningNotes      *string `json:"eveningNotes,omitempty"`
	MorningNotes      *string `json:"morningNotes,omitempty"`
}

func ValidateEveningRequest(req *EveningRequest) error {
	return validate.Struct(req)
}

func ValidateMorningRequest(req *MorningRequest) error {
	return validate.Struct(req)
}

func ValidateEditRequest(req *EditRequest) error {
	return validate.Struct(req)
}

// NewEveningRecord builds a fresh in-progress record filed under the
// current calendar date of the injected moment.
func NewEveningRecord(now time.Time, req *EveningRequest) internal.SleepRecord {
	return internal.SleepRecord{
		ID:            uuid.NewString(),
		FiledDate:     now.Format(dateLayout),
		Bedtime:       req.Bedtime,
		BedtimeMood:   req.BedtimeMood,
		EveningNotes:  req.EveningNotes,
		Wakeup:        req.Wakeup,
		WakeupMood:    0,
		Fuzziness:     0,
		SleepDuration: internal.InProgress,
		CreatedAt:     now,
	}
}

// MergeCompletion applies a morning entry to an existing record. The
// evening fields stay untouched; duration and filed date are recomputed
// only when the entry carries a wake time.
func MergeCompletion(existing internal.SleepRecord, req *MorningRequest) internal.SleepRecord {
	out := existing
	if req.Wakeup != "" {
		out.Wakeup = req.Wakeup
		out.SleepDuration = ComputeDuration(existing.Bedtime, req.Wakeup)
		out.FiledDate = rollFiledDate(existing.FiledDate, existing.Bedtime, req.Wakeup)
	}
	out.WakeupMood = req.WakeupMood
	out.Fuzziness = req.Fuzziness
	out.WokeUpDuringDream = req.WokeUpDuringDream
	out.MorningNotes = req.MorningNotes
	return out
}

// MergeEdit applies a partial edit. Filed date and duration are
// recomputed only when the merge actually changed a time field;
// recomputing against the current filed date on a no-op edit would
// roll a completed record forward one day per save.
func MergeEdit(existing internal.SleepRecord, req *EditRequest) internal.SleepRecord {
	out := existing
	if req.Bedtime != "" {
		out.Bedtime = req.Bedtime
	}
	if req.Wakeup != "" {
		out.Wakeup = req.Wakeup
	}
	if req.BedtimeMood != nil && *req.BedtimeMood != 0 {
		out.BedtimeMood = *req.BedtimeMood
	}
	if req.WakeupMood != nil && *req.WakeupMood != 0 {
		out.WakeupMood = *req.WakeupMood
	}
	if req.Fuzziness != nil && *req.Fuzziness != 0 {
		out.Fuzziness = *req.Fuzziness
	}
	if req.WokeUpDuringDream != nil {
		out.WokeUpDuringDream = req.WokeUpDuringDream
	}
	if req.EveningNotes != nil {
		out.EveningNotes = *req.EveningNotes
	}
	if req.MorningNotes != nil {
		out.MorningNotes = *req.MorningNotes
	}

	timesChanged := out.Bedtime != existing.Bedtime || out.Wakeup != existing.Wakeup
	if timesChanged && out.Bedtime != "" && out.Wakeup != "" {
		out.FiledDate = rollFiledDate(existing.FiledDate, out.Bedtime, out.Wakeup)
		out.SleepDuration = ComputeDuration(out.Bedtime, out.Wakeup)
	}
	return out
}

// rollFiledDate files a record under its wake date. Both clock values
// are placed on the reference day taken from the current filed date;
// a wake time at or before the bedtime means the wake happened on the
// following day. Agrees with ComputeDuration's wraparound.
func rollFiledDate(filedDate, bedtime, wakeup string) string {
	ref, err := time.Parse(dateLayout, filedDate)
	if err != nil {
		return filedDate
	}
	bedMin, ok := parseClock(bedtime)
	if !ok {
		return filedDate
	}
	wakeMin, ok := parseClock(wakeup)
	if !ok {
		return filedDate
	}

	wake := ref.Add(time.Duration(wakeMin) * time.Minute)
	if wakeMin <= bedMin {
		wake = wake.AddDate(0, 0, 1)
	}
	return wake.Format(dateLayout)
}

// CreateEvening validates, builds and stores a new evening record. New
// records go to the head of the collection; most-recent-first ordering
// is what the flow resolver's lookup relies on.
func CreateEvening(ctx context.Context, repo storage.RecordRepository, clock internal.Clock, req *EveningRequest) (*internal.SleepRecord, error) {
	rec := NewEveningRecord(clock.Now(), req)
	if err := repo.SaveRecord(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CompleteMorning merges a morning entry into the record with the given
// id. An unknown id is a contract violation surfaced as
// internal.ErrRecordNotFound, never a silent no-op.
func CompleteMorning(ctx context.Context, repo storage.RecordRepository, id string, req *MorningRequest) (*internal.SleepRecord, error) {
	existing, err := repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := MergeCompletion(*existing, req)
	if err := repo.SaveRecord(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// EditRecord applies a partial edit to the record with the given id.
func EditRecord(ctx context.Context, repo storage.RecordRepository, id string, req *EditRequest) (*internal.SleepRecord, error) {
	existing, err := repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := MergeEdit(*existing, req)
	if err := repo.SaveRecord(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
