package domain

import (
	"fmt"
	"time"
)

// ObjectiveAchievement records that a participant completed an
// objective. At most one row exists per (org, objective, participant);
// repeat grants are no-ops.
type ObjectiveAchievement struct {
	ID                string
	OrgID             string
	ObjectiveID       string
	ParticipantID     string
	MeetingID         *string
	AchievedDate      time.Time
	AttributionSource string
	Notes             string
	CreatedBy         string
	CreatedAt         time.Time
}

func (a *ObjectiveAchievement) Validate() error {
	if a.ObjectiveID == "" {
		return fmt.Errorf("%w: achievement requires an objective", ErrValidation)
	}
	if a.ParticipantID == "" {
		return fmt.Errorf("%w: achievement requires a participant", ErrValidation)
	}
	return nil
}

// GrantOutcome is one item of a batch grant result.
type GrantOutcome struct {
	ParticipantID string      `json:"participant_id"`
	Status        GrantStatus `json:"status"`
	Error         string      `json:"error,omitempty"`
}
