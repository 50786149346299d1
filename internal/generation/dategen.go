package generation

import (
	"fmt"
	"sort"
	"time"

	"github.com/annafors/planera/internal/domain"
)

// MeetingSkeleton is one computed calendar entry before persistence.
type MeetingSkeleton struct {
	Date        time.Time
	IsCancelled bool
	Theme       string
	Location    string
	AnchorID    *string
	Metadata    map[string]any
}

// GenerateInput holds the season parameters for date generation.
type GenerateInput struct {
	StartDate      time.Time
	EndDate        time.Time
	MeetingWeekday string
	Pattern        domain.RecurrencePattern
	Blackouts      []domain.BlackoutRange
	Anchors        []domain.Anchor
}

// Generate turns a season definition into an ordered, date-deduplicated
// list of meeting skeletons.
//
// Regular slots step from the first matching weekday on or after the
// start date, by 7 (weekly) or 14 (biweekly) days, through the end date
// inclusive. Each slot is classified against blackout ranges and
// anchors; anchors that fall off-cadence are appended as extra entries
// unless their type suppresses the meeting entirely.
func Generate(in GenerateInput) ([]MeetingSkeleton, error) {
	weekday, err := domain.ParseWeekday(in.MeetingWeekday)
	if err != nil {
		return nil, err
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", domain.ErrValidation)
	}

	step := 7
	if in.Pattern == domain.PatternBiweekly {
		step = 14
	}

	start := domain.DateOnly(in.StartDate)
	end := domain.DateOnly(in.EndDate)

	anchorsByDate := make(map[string]domain.Anchor, len(in.Anchors))
	for _, a := range in.Anchors {
		anchorsByDate[a.Date.Format(domain.DateLayout)] = a
	}

	// Walk forward to the first cadence date.
	first := start
	for first.Weekday() != weekday {
		first = first.AddDate(0, 0, 1)
	}

	var skeletons []MeetingSkeleton
	seen := make(map[string]bool)
	for d := first; !d.After(end); d = d.AddDate(0, 0, step) {
		key := d.Format(domain.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		anchor, hasAnchor := anchorsByDate[key]
		skeletons = append(skeletons, classify(d, blackoutFor(d, in.Blackouts), anchor, hasAnchor))
	}

	// Off-cadence anchors become extra special-event entries.
	for _, a := range in.Anchors {
		day := domain.DateOnly(a.Date)
		key := day.Format(domain.DateLayout)
		if seen[key] || a.Type == domain.AnchorNoMeeting {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		seen[key] = true
		skeletons = append(skeletons, classify(day, blackoutFor(day, in.Blackouts), a, true))
	}

	sort.SliceStable(skeletons, func(i, j int) bool {
		return skeletons[i].Date.Before(skeletons[j].Date)
	})
	return skeletons, nil
}

// classify resolves the blackout/anchor precedence for a single date.
// A blackout wins over any coincident anchor except an explicit
// special_event, which is a stronger statement than a season-level
// blackout.
func classify(d time.Time, blackout *domain.BlackoutRange, anchor domain.Anchor, hasAnchor bool) MeetingSkeleton {
	if blackout != nil && !(hasAnchor && anchor.Type == domain.AnchorSpecialEvent) {
		meta := map[string]any{"blackout": true}
		if blackout.Label != "" {
			meta["blackout_label"] = blackout.Label
		}
		return MeetingSkeleton{
			Date:        d,
			IsCancelled: true,
			Metadata:    meta,
		}
	}

	if hasAnchor {
		id := anchor.ID
		return MeetingSkeleton{
			Date:        d,
			IsCancelled: anchor.Type == domain.AnchorNoMeeting,
			Theme:       anchor.Theme,
			Location:    anchor.Location,
			AnchorID:    &id,
			Metadata:    map[string]any{"anchor_type": string(anchor.Type)},
		}
	}

	return MeetingSkeleton{Date: d, Metadata: map[string]any{}}
}

func blackoutFor(d time.Time, blackouts []domain.BlackoutRange) *domain.BlackoutRange {
	for i := range blackouts {
		if blackouts[i].Contains(d) {
			return &blackouts[i]
		}
	}
	return nil
}
