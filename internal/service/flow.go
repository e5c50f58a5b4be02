package service

import (
	"sort"
	"time"

	"github.com/pagetribe/sleepwell/internal"
)

type Flow string

const (
	FlowMorning Flow = "morning"
	FlowEvening Flow = "evening"
)

// MorningWindow is the half-open local-hour range [StartHour, EndHour)
// during which an in-progress record is offered for completion.
type MorningWindow struct {
	StartHour int
	EndHour   int
}

func (w MorningWindow) Contains(t time.Time) bool {
	h := t.Hour()
	return h >= w.StartHour && h < w.EndHour
}

// FlowDecision tells the presentation layer which form to show. Target
// is non-nil only for the morning flow.
type FlowDecision struct {
	Flow   Flow                  `json:"flow"`
	Target *internal.SleepRecord `json:"target,omitempty"`
}

// ResolveFlow decides between the evening flow (start a new record) and
// the morning flow (complete the most recent in-progress record).
// Outside the morning window the flow is always evening, so a forgotten
// completion never blocks new entries. Pure: the caller supplies the
// current moment.
func ResolveFlow(now time.Time, records []internal.SleepRecord, win MorningWindow) FlowDecision {
	if !win.Contains(now) {
		return FlowDecision{Flow: FlowEvening}
	}

	// Stores return newest-first already, but the lookup must not
	// depend on that; re-establish creation order before scanning.
	ordered := make([]internal.SleepRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	for i := range ordered {
		if ordered[i].InProgress() {
			target := ordered[i]
			return FlowDecision{Flow: FlowMorning, Target: &target}
		}
	}
	return FlowDecision{Flow: FlowEvening}
}
