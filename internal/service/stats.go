package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pagetribe/sleepwell/internal"
)

// DurationBucket groups nights by the integer hour of their duration.
type DurationBucket struct {
	Hours        int     `json:"hours"`
	AverageScore float64 `json:"averageScore"`
	Count        int     `json:"count"`
}

// StatsReport is the analytics view model. Insufficient is a normal
// result value for an empty history, never an error.
type StatsReport struct {
	Nights       int              `json:"nights"`
	Insufficient bool             `json:"insufficient"`
	Buckets      []DurationBucket `json:"buckets"`
	Best         *DurationBucket  `json:"best,omitempty"`
}

// BuildNights filters the records down to finished nights. One night
// per completed record; the start date is the filed (wake) date rolled
// back a day when the sleep crossed midnight.
func BuildNights(records []internal.SleepRecord) []internal.NightRecord {
	nights := make([]internal.NightRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		if !r.CompletedNight() {
			continue
		}
		dream := r.WokeUpDuringDream != nil && *r.WokeUpDuringDream
		nights = append(nights, internal.NightRecord{
			StartDate:         nightStartDate(r.FiledDate, r.Bedtime, r.Wakeup),
			EndDate:           r.FiledDate,
			Bedtime:           r.Bedtime,
			Wakeup:            r.Wakeup,
			Duration:          r.SleepDuration,
			BedtimeMood:       r.BedtimeMood,
			WakeupMood:        r.WakeupMood,
			Fuzziness:         r.Fuzziness,
			WokeUpDuringDream: dream,
			EveningNotes:      r.EveningNotes,
			MorningNotes:      r.MorningNotes,
		})
	}
	return nights
}

// Score is the per-night wellness scalar: wake mood plus inverted
// fuzziness plus the previous evening's mood. Higher is better; a
// fuzziness of 1 (clear-headed) contributes 5. Unset components simply
// degrade the score, they do not reject the night.
func Score(n internal.NightRecord) int {
	return n.WakeupMood + (6 - n.Fuzziness) + n.BedtimeMood
}

// AggregateStats buckets nights by whole hours slept and finds the
// best-scoring bucket. Nights with an unparsable duration are skipped,
// not zero-filled. Ties on the best bucket resolve to the bucket
// encountered first.
func AggregateStats(records []internal.SleepRecord) StatsReport {
	nights := BuildNights(records)
	report := StatsReport{
		Nights:       len(nights),
		Insufficient: len(nights) == 0,
		Buckets:      []DurationBucket{},
	}

	type acc struct {
		total int
		count int
	}
	sums := make(map[int]*acc)
	var order []int

	for _, n := range nights {
		hours, ok := durationHours(n.Duration)
		if !ok {
			continue
		}
		a := sums[hours]
		if a == nil {
			a = &acc{}
			sums[hours] = a
			order = append(order, hours)
		}
		a.total += Score(n)
		a.count++
	}

	var best *DurationBucket
	for _, hours := range order {
		a := sums[hours]
		bucket := DurationBucket{
			Hours:        hours,
			AverageScore: round2(float64(a.total) / float64(a.count)),
			Count:        a.count,
		}
		if best == nil || bucket.AverageScore > best.AverageScore {
			b := bucket
			best = &b
		}
	}
	report.Best = best

	// Chart rows go out sorted by hour ascending.
	for _, hours := range sortedHours(order) {
		a := sums[hours]
		report.Buckets = append(report.Buckets, DurationBucket{
			Hours:        hours,
			AverageScore: round2(float64(a.total) / float64(a.count)),
			Count:        a.count,
		})
	}
	return report
}

// durationHours parses the whole-hour component from a "<H>h <M>m"
// duration string.
func durationHours(d string) (int, bool) {
	var h, m int
	if n, err := fmt.Sscanf(d, "%dh %dm", &h, &m); err != nil || n != 2 {
		return 0, false
	}
	return h, true
}

func nightStartDate(filedDate, bedtime, wakeup string) string {
	end, err := time.Parse(dateLayout, filedDate)
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
	if wakeMin <= bedMin {
		return end.AddDate(0, 0, -1).Format(dateLayout)
	}
	return end.Format(dateLayout)
}

func sortedHours(order []int) []int {
	out := make([]int, len(order))
	copy(out, order)
	sort.Ints(out)
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
