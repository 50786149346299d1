package domain

import (
	"fmt"
	"time"
)

// MeetingActivity is one agenda item of a meeting. It may reference a
// library item and may carry a series marker when placed by a
// distribution rule. Mutable only while the owning meeting is unlocked.
type MeetingActivity struct {
	ID                string
	MeetingID         string
	ActivityLibraryID *string
	Name              string
	Description       string
	DurationMinutes   int
	SortOrder         int
	ObjectiveIDs      []string
	SeriesID          *string
	SeriesOccurrence  int
	Metadata          map[string]any
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a *MeetingActivity) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: activity name is required", ErrValidation)
	}
	if a.MeetingID == "" {
		return fmt.Errorf("%w: activity requires a meeting", ErrValidation)
	}
	if a.DurationMinutes < 0 {
		return fmt.Errorf("%w: activity duration must not be negative", ErrValidation)
	}
	return nil
}

// ActivityLibraryItem is a reusable activity in the org catalog. It is
// referenced, never owned, by meeting activities and distribution rules.
// Deactivation is a soft delete.
type ActivityLibraryItem struct {
	ID                 string
	OrgID              string
	Name               string
	Category           string
	Tags               []string
	MinDurationMinutes int
	MaxDurationMinutes int
	ObjectiveIDs       []string
	TimesUsed          int
	LastUsedDate       *time.Time
	AvgRating          float64
	RatingCount        int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (l *ActivityLibraryItem) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("%w: library item name is required", ErrValidation)
	}
	if l.MinDurationMinutes < 0 || l.MaxDurationMinutes < 0 {
		return fmt.Errorf("%w: duration bounds must not be negative", ErrValidation)
	}
	if l.MaxDurationMinutes > 0 && l.MinDurationMinutes > l.MaxDurationMinutes {
		return fmt.Errorf("%w: min duration %d exceeds max duration %d",
			ErrValidation, l.MinDurationMinutes, l.MaxDurationMinutes)
	}
	return nil
}

// RecordRating folds one rating into the running average.
func (l *ActivityLibraryItem) RecordRating(rating float64) {
	total := l.AvgRating*float64(l.RatingCount) + rating
	l.RatingCount++
	l.AvgRating = total / float64(l.RatingCount)
}
