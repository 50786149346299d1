package service

import (
	"fmt"
	"time"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
)

// Clock supplies the current time. Services use it for lock decisions
// and audit stamps; tests substitute a fixed clock.
type Clock func() time.Time

func clockOrWallClock(c Clock) Clock {
	if c != nil {
		return c
	}
	return func() time.Time { return time.Now().UTC() }
}

// guardOrg hides rows belonging to another tenant behind not-found.
func guardOrg(orgID, rowOrg, entity string) error {
	if rowOrg != orgID {
		return fmt.Errorf("%s: %w", entity, repository.ErrNotFound)
	}
	return nil
}

// guardUnlocked rejects mutations of past meetings.
func guardUnlocked(m *domain.Meeting, now time.Time) error {
	if m.IsLocked(now) {
		return fmt.Errorf("meeting %s on %s: %w",
			m.ID, m.MeetingDate.Format(domain.DateLayout), domain.ErrLocked)
	}
	return nil
}
