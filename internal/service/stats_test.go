package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagetribe/sleepwell/internal"
)

func completedRecord(id, filed, bedtime, wakeup, duration string, bedMood, wakeMood, fuzz int) internal.SleepRecord {
	return internal.SleepRecord{
		ID:            id,
		FiledDate:     filed,
		Bedtime:       bedtime,
		Wakeup:        wakeup,
		BedtimeMood:   bedMood,
		WakeupMood:    wakeMood,
		Fuzziness:     fuzz,
		SleepDuration: duration,
	}
}

func TestBuildNights_FiltersIncomplete(t *testing.T) {
	records := []internal.SleepRecord{
		completedRecord("done", "2024-05-21", "22:00", "06:00", "8h 0m", 3, 4, 2),
		{ID: "in-progress", FiledDate: "2024-05-22", Bedtime: "23:00", WakeupMood: 0, SleepDuration: internal.InProgress},
		{ID: "no-bedtime", FiledDate: "2024-05-23", Wakeup: "07:00", WakeupMood: 3, SleepDuration: "7h 0m"},
	}

	nights := BuildNights(records)

	assert.Len(t, nights, 1)
	assert.Equal(t, "8h 0m", nights[0].Duration)
}

func TestBuildNights_StartAndEndDates(t *testing.T) {
	overnight := completedRecord("a", "2024-05-21", "22:00", "06:00", "8h 0m", 3, 4, 2)
	sameDay := completedRecord("b", "2024-05-21", "01:00", "09:00", "8h 0m", 3, 4, 2)

	nights := BuildNights([]internal.SleepRecord{overnight, sameDay})

	assert.Equal(t, "2024-05-20", nights[0].StartDate)
	assert.Equal(t, "2024-05-21", nights[0].EndDate)
	assert.Equal(t, "2024-05-21", nights[1].StartDate)
	assert.Equal(t, "2024-05-21", nights[1].EndDate)
}

func TestScore(t *testing.T) {
	night := internal.NightRecord{BedtimeMood: 3, WakeupMood: 4, Fuzziness: 2}
	assert.Equal(t, 4+(6-2)+3, Score(night))

	// Unset components degrade the score, they do not reject the night.
	unrated := internal.NightRecord{BedtimeMood: 0, WakeupMood: 4, Fuzziness: 0}
	assert.Equal(t, 4+6+0, Score(unrated))
}

func TestAggregateStats_BestBucket(t *testing.T) {
	records := []internal.SleepRecord{
		completedRecord("a", "2024-05-19", "22:00", "06:30", "8h 30m", 2, 4, 2), // score 10
		completedRecord("b", "2024-05-20", "23:00", "06:15", "7h 15m", 3, 5, 1), // score 13
		completedRecord("c", "2024-05-21", "21:30", "06:45", "9h 15m", 4, 3, 3), // score 10
	}

	report := AggregateStats(records)

	assert.Equal(t, 3, report.Nights)
	assert.False(t, report.Insufficient)
	if assert.NotNil(t, report.Best) {
		assert.Equal(t, 7, report.Best.Hours)
		assert.Equal(t, 13.0, report.Best.AverageScore)
	}
	// Chart rows sorted by hour ascending.
	hours := make([]int, len(report.Buckets))
	for i, b := range report.Buckets {
		hours[i] = b.Hours
	}
	assert.Equal(t, []int{7, 8, 9}, hours)
}

func TestAggregateStats_BucketsAverage(t *testing.T) {
	records := []internal.SleepRecord{
		completedRecord("a", "2024-05-19", "22:00", "06:30", "8h 30m", 2, 4, 2), // score 10
		completedRecord("b", "2024-05-20", "22:15", "06:45", "8h 30m", 3, 5, 1), // score 13
	}

	report := AggregateStats(records)

	assert.Len(t, report.Buckets, 1)
	assert.Equal(t, 8, report.Buckets[0].Hours)
	assert.Equal(t, 2, report.Buckets[0].Count)
	assert.Equal(t, 11.5, report.Buckets[0].AverageScore)
}

func TestAggregateStats_TieResolvesToFirstEncountered(t *testing.T) {
	records := []internal.SleepRecord{
		completedRecord("a", "2024-05-19", "22:00", "07:00", "9h 0m", 3, 4, 2), // score 11
		completedRecord("b", "2024-05-20", "23:00", "06:00", "7h 0m", 3, 4, 2), // score 11
	}

	report := AggregateStats(records)

	if assert.NotNil(t, report.Best) {
		assert.Equal(t, 9, report.Best.Hours, "first-encountered bucket wins a tie")
	}
}

func TestAggregateStats_SkipsUnparsableDurations(t *testing.T) {
	records := []internal.SleepRecord{
		completedRecord("a", "2024-05-19", "22:00", "06:00", "8h 0m", 3, 4, 2),
		completedRecord("b", "2024-05-20", "23:00", "06:00", "garbled", 3, 5, 1),
	}

	report := AggregateStats(records)

	assert.Equal(t, 2, report.Nights)
	assert.Len(t, report.Buckets, 1)
	assert.Equal(t, 8, report.Buckets[0].Hours)
}

func TestAggregateStats_EmptyHistoryIsInsufficientNotError(t *testing.T) {
	report := AggregateStats(nil)

	assert.True(t, report.Insufficient)
	assert.Equal(t, 0, report.Nights)
	assert.Empty(t, report.Buckets)
	assert.Nil(t, report.Best)
}
