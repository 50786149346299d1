package domain

import (
	"fmt"
	"time"
)

// Reminder is a schedule record tied to a meeting. Delivery happens in
// an external worker that polls these rows; this core only creates and
// marks them.
type Reminder struct {
	ID            string
	MeetingID     string
	Channel       ReminderChannel
	ScheduledAt   time.Time
	CustomMessage string
	SentAt        *time.Time
	CreatedAt     time.Time
}

func (r *Reminder) Validate() error {
	if r.MeetingID == "" {
		return fmt.Errorf("%w: reminder requires a meeting", ErrValidation)
	}
	if !ValidReminderChannels[string(r.Channel)] {
		return fmt.Errorf("%w: unknown reminder channel %q", ErrValidation, r.Channel)
	}
	if r.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: reminder schedule time is required", ErrValidation)
	}
	return nil
}
