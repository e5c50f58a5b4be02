package internal

import "time"

// InProgress is the duration marker for a record that has not been
// completed by a morning entry yet.
const InProgress = "In Progress"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// SleepRecord is one sleep cycle, possibly incomplete. JSON field names
// match the historical store shape so existing data files load without
// migration.
type SleepRecord struct {
	ID string `json:"id"`
	// FiledDate is the calendar date (YYYY-MM-DD) the record is filed
	// under. Starts as the bedtime date and becomes the wake date once
	// the record is completed.
	FiledDate    string `json:"date"`
	Bedtime      string `json:"bedtime"`
	BedtimeMood  int    `json:"bedtimeMood"`
	EveningNotes string `json:"eveningNotes,omitempty"`
	Wakeup       string `json:"wakeup,omitempty"`
	// WakeupMood is the completion discriminant: 0 means the record is
	// still in progress.
	WakeupMood        int       `json:"wakeupMood"`
	Fuzziness         int       `json:"fuzziness"`
	WokeUpDuringDream *bool     `json:"wokeUpDuringDream,omitempty"`
	MorningNotes      string    `json:"morningNotes,omitempty"`
	SleepDuration     string    `json:"sleepDuration"`
	CreatedAt         time.Time `json:"createdAt"`
}

// InProgress reports whether the record still lacks a morning
// completion. WakeupMood is the sole discriminant, not SleepDuration.
func (r *SleepRecord) InProgress() bool {
	return r.WakeupMood == 0
}

// CompletedNight reports whether the record qualifies as a finished
// night: bedtime, wake-up time and a rated wake-up mood all present.
func (r *SleepRecord) CompletedNight() bool {
	return r.Bedtime != "" && r.Wakeup != "" && r.WakeupMood != 0
}

// NightRecord is a read-only aggregation unit derived from one
// completed SleepRecord, consumed by the stats view.
type NightRecord struct {
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	Bedtime           string `json:"bedtime"`
	Wakeup            string `json:"wakeup"`
	Duration          string `json:"duration"`
	BedtimeMood       int    `json:"bedtimeMood"`
	WakeupMood        int    `json:"wakeupMood"`
	Fuzziness         int    `json:"fuzziness"`
	WokeUpDuringDream bool   `json:"wokeUpDuringDream"`
	EveningNotes      string `json:"eveningNotes,omitempty"`
	MorningNotes      string `json:"morningNotes,omitempty"`
}
