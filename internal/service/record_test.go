package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pagetribe/sleepwell/internal"
	"github.com/pagetribe/sleepwell/internal/storage"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }
func strPtr(s string) *string {
	return &s
}

func TestNewEveningRecord(t *testing.T) {
	now := time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC)
	req := &EveningRequest{
		Bedtime:      "22:00",
		BedtimeMood:  5,
		EveningNotes: "X",
		Wakeup:       "06:30",
	}

	rec := NewEveningRecord(now, req)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2024-05-20", rec.FiledDate)
	assert.Equal(t, "22:00", rec.Bedtime)
	assert.Equal(t, 5, rec.BedtimeMood)
	assert.Equal(t, "X", rec.EveningNotes)
	assert.Equal(t, internal.InProgress, rec.SleepDuration)
	assert.Equal(t, 0, rec.WakeupMood)
	assert.Equal(t, 0, rec.Fuzziness)
	assert.Nil(t, rec.WokeUpDuringDream)
	assert.True(t, rec.InProgress())
}

func TestMergeCompletion_RolloverRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC)
	rec := NewEveningRecord(now, &EveningRequest{Bedtime: "22:00", BedtimeMood: 5, EveningNotes: "X"})

	done := MergeCompletion(rec, &MorningRequest{
		Wakeup:            "07:30",
		WakeupMood:        4,
		Fuzziness:         2,
		WokeUpDuringDream: boolPtr(false),
		MorningNotes:      "slept well",
	})

	assert.Equal(t, "9h 30m", done.SleepDuration)
	assert.Equal(t, "2024-05-21", done.FiledDate, "completed record files under the wake date")
	assert.Equal(t, 4, done.WakeupMood)
	assert.Equal(t, 2, done.Fuzziness)
	assert.Equal(t, "slept well", done.MorningNotes)
	assert.False(t, done.InProgress())

	// Evening fields survive completion untouched.
	assert.Equal(t, rec.Bedtime, done.Bedtime)
	assert.Equal(t, rec.BedtimeMood, done.BedtimeMood)
	assert.Equal(t, rec.EveningNotes, done.EveningNotes)
	assert.Equal(t, rec.ID, done.ID)
}

func TestMergeCompletion_SameDayWakeKeepsDate(t *testing.T) {
	now := time.Date(2024, 5, 20, 1, 0, 0, 0, time.UTC)
	rec := NewEveningRecord(now, &EveningRequest{Bedtime: "01:00", BedtimeMood: 3})

	done := MergeCompletion(rec, &MorningRequest{Wakeup: "09:00", WakeupMood: 3, Fuzziness: 3})

	assert.Equal(t, "8h 0m", done.SleepDuration)
	assert.Equal(t, "2024-05-20", done.FiledDate)
}

func TestMergeCompletion_NoWakeupKeepsDuration(t *testing.T) {
	now := time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC)
	rec := NewEveningRecord(now, &EveningRequest{Bedtime: "22:00"})

	done := MergeCompletion(rec, &MorningRequest{WakeupMood: 4, Fuzziness: 1})

	assert.Equal(t, internal.InProgress, done.SleepDuration)
	assert.Equal(t, "2024-05-20", done.FiledDate)
	assert.Equal(t, 4, done.WakeupMood)
}

func TestMergeEdit_EmptyChangeSetIsIdempotent(t *testing.T) {
	now := time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC)
	rec := NewEveningRecord(now, &EveningRequest{Bedtime: "22:00", BedtimeMood: 5})
	done := MergeCompletion(rec, &MorningRequest{Wakeup: "07:30", WakeupMood: 4, Fuzziness: 2})

	again := MergeEdit(done, &EditRequest{})

	assert.Equal(t, done, again, "a no-op edit must not roll the filed date forward")
}

func TestMergeEdit_RecomputesOnTimeChange(t *testing.T) {
	now := time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC)
	rec := NewEveningRecord(now, &EveningRequest{Bedtime: "22:00", BedtimeMood: 5})
	done := MergeCompletion(rec, &MorningRequest{Wakeup: "07:30", WakeupMood: 4, Fuzziness: 2})

	edited := MergeEdit(done, &EditRequest{Wakeup: "06:00"})

	assert.Equal(t, "8h 0m", edited.SleepDuration)
	assert.Equal(t, "06:00", edited.Wakeup)
}

func TestMergeEdit_NumericThreeWayFallback(t *testing.T) {
	rec := internal.SleepRecord{
		ID:          "r1",
		FiledDate:   "2024-05-21",
		Bedtime:     "22:00",
		Wakeup:      "07:30",
		BedtimeMood: 5,
		WakeupMood:  4,
		Fuzziness:   0, // never rated
	}

	edited := MergeEdit(rec, &EditRequest{
		BedtimeMood: intPtr(0), // cleared: falls back to stored 5
		WakeupMood:  intPtr(2), // explicit new value
		Fuzziness:   intPtr(0), // cleared and stored empty: stays empty
	})

	assert.Equal(t, 5, edited.BedtimeMood)
	assert.Equal(t, 2, edited.WakeupMood)
	assert.Equal(t, 0, edited.Fuzziness)
}

func TestMergeEdit_NotesAndDreamFlag(t *testing.T) {
	rec := internal.SleepRecord{ID: "r1", FiledDate: "2024-05-20", EveningNotes: "old"}

	edited := MergeEdit(rec, &EditRequest{
		EveningNotes:      strPtr(""),
		MorningNotes:      strPtr("vivid"),
		WokeUpDuringDream: boolPtr(true),
	})

	assert.Equal(t, "", edited.EveningNotes, "explicit empty string clears notes")
	assert.Equal(t, "vivid", edited.MorningNotes)
	if assert.NotNil(t, edited.WokeUpDuringDream) {
		assert.True(t, *edited.WokeUpDuringDream)
	}
}

func TestCompleteMorning_UnknownIDFails(t *testing.T) {
	repo := newTestRepo(t)

	_, err := CompleteMorning(context.Background(), repo, "nope", &MorningRequest{WakeupMood: 4})

	assert.ErrorIs(t, err, internal.ErrRecordNotFound)
}

func TestCreateEveningThenCompleteMorning_ThroughStore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	clock := internal.FixedClock{Moment: time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC)}

	rec, err := CreateEvening(ctx, repo, clock, &EveningRequest{Bedtime: "22:00", BedtimeMood: 5, EveningNotes: "X"})
	assert.NoError(t, err)
	assert.Equal(t, internal.InProgress, rec.SleepDuration)
	assert.Equal(t, 0, rec.WakeupMood)

	done, err := CompleteMorning(ctx, repo, rec.ID, &MorningRequest{Wakeup: "07:30", WakeupMood: 4, Fuzziness: 2})
	assert.NoError(t, err)
	assert.Equal(t, "9h 30m", done.SleepDuration)
	assert.Equal(t, "2024-05-21", done.FiledDate)
	assert.Equal(t, "22:00", done.Bedtime)
	assert.Equal(t, 5, done.BedtimeMood)
	assert.Equal(t, "X", done.EveningNotes)

	stored, err := repo.GetRecord(ctx, rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, *done, *stored)
}

func TestValidateRequests(t *testing.T) {
	assert.NoError(t, ValidateEveningRequest(&EveningRequest{Bedtime: "22:00", BedtimeMood: 3}))
	assert.Error(t, ValidateEveningRequest(&EveningRequest{Bedtime: "25:99"}))
	assert.Error(t, ValidateEveningRequest(&EveningRequest{BedtimeMood: 9}))

	assert.NoError(t, ValidateMorningRequest(&MorningRequest{Wakeup: "07:30", WakeupMood: 4, Fuzziness: 2}))
	assert.Error(t, ValidateMorningRequest(&MorningRequest{Wakeup: "07:30"}), "wakeupMood is required on completion")
	assert.Error(t, ValidateMorningRequest(&MorningRequest{Wakeup: "07:30", WakeupMood: 6}))

	assert.NoError(t, ValidateEditRequest(&EditRequest{}))
	assert.Error(t, ValidateEditRequest(&EditRequest{Fuzziness: intPtr(7)}))
}

func newTestRepo(t *testing.T) storage.RecordRepository {
	t.Helper()
	repo, err := storage.NewFileStorage(filepath.Join(t.TempDir(), "records.json"), internal.NopLogger{})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}
