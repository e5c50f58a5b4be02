package storage

import (
	"time"

	"github.com/pagetribe/sleepwell/internal"
)

// storedRecord is the on-disk shape. Early journal exports named the
// wake time "wakeupTime" and kept a single "additionalInfo" notes
// field; those aliases are folded into the canonical shape on load so
// the core only ever sees one record shape.
type storedRecord struct {
	internal.SleepRecord
	WakeupTime     string `json:"wakeupTime,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

func (sr *storedRecord) normalize() *internal.SleepRecord {
	rec := sr.SleepRecord
	if rec.Wakeup == "" && sr.WakeupTime != "" {
		rec.Wakeup = sr.WakeupTime
	}
	// additionalInfo predates the evening/morning notes split; it was
	// authored with the evening form.
	if rec.EveningNotes == "" && sr.AdditionalInfo != "" {
		rec.EveningNotes = sr.AdditionalInfo
	}
	if rec.CreatedAt.IsZero() {
		// Legacy records carry no creation stamp; the filed date is
		// the closest ordering proxy available.
		if t, err := time.Parse("2006-01-02", rec.FiledDate); err == nil {
			rec.CreatedAt = t
		}
	}
	return &rec
}
