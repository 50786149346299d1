// Package distribution computes where recurring activities land across
// a season. The engine is pure: it receives already-filtered eligible
// meetings (unlocked, not cancelled) grouped into scope units and
// returns placements; persistence happens in the service layer.
package distribution

import (
	"sort"
	"time"

	"github.com/annafors/planera/internal/domain"
)

// EligibleMeeting is the minimal meeting view the engine needs.
type EligibleMeeting struct {
	ID   string
	Date time.Time
}

// ScopeUnit is one counting window of a distribution scope: the whole
// year, one period, or one calendar month.
type ScopeUnit struct {
	Key      string
	Meetings []EligibleMeeting
}

// Placement is one planned occurrence of a rule's activity.
type Placement struct {
	ScopeKey   string
	MeetingID  string
	Date       time.Time
	Occurrence int // 1-based within the scope unit
}

// PlacementIndices maps a placement rule to the chosen indices in an
// eligible list of the given length. Manual rules place nothing. The
// result is strictly increasing and never longer than count.
func PlacementIndices(rule domain.PlacementRule, count, occurrences int) []int {
	if count <= 0 || occurrences <= 0 || rule == domain.PlaceManual {
		return nil
	}
	n := occurrences
	if n > count {
		n = count
	}

	indices := make([]int, 0, n)
	switch rule {
	case domain.PlaceNearStart:
		for i := 0; i < n; i++ {
			indices = append(indices, i)
		}
	case domain.PlaceNearEnd:
		for i := count - n; i < count; i++ {
			indices = append(indices, i)
		}
	case domain.PlaceEvenlySpaced:
		if n == 1 {
			return []int{(count - 1) / 2}
		}
		for i := 0; i < n; i++ {
			indices = append(indices, i*(count-1)/(n-1))
		}
	}
	return indices
}

// Plan computes placements for a rule across all scope units. existing
// holds the count of already-materialized occurrences of this rule per
// scope key; units that have reached occurrences_per_scope are skipped,
// partially filled units only receive the remainder. Units with no
// eligible meetings are skipped, never an error.
func Plan(rule *domain.DistributionRule, units []ScopeUnit, existing map[string]int) []Placement {
	var placements []Placement
	for _, unit := range units {
		already := existing[unit.Key]
		remaining := rule.OccurrencesPerScope - already
		if remaining <= 0 || len(unit.Meetings) == 0 {
			continue
		}

		meetings := append([]EligibleMeeting(nil), unit.Meetings...)
		sort.SliceStable(meetings, func(i, j int) bool {
			return meetings[i].Date.Before(meetings[j].Date)
		})

		for i, idx := range PlacementIndices(rule.Placement, len(meetings), remaining) {
			placements = append(placements, Placement{
				ScopeKey:   unit.Key,
				MeetingID:  meetings[idx].ID,
				Date:       meetings[idx].Date,
				Occurrence: already + i + 1,
			})
		}
	}
	return placements
}

// YearUnits wraps the whole eligible list in a single scope unit.
func YearUnits(meetings []EligibleMeeting) []ScopeUnit {
	return []ScopeUnit{{Key: "year", Meetings: meetings}}
}

// MonthUnits groups eligible meetings by calendar month (YYYY-MM keys),
// ordered chronologically.
func MonthUnits(meetings []EligibleMeeting) []ScopeUnit {
	byMonth := make(map[string][]EligibleMeeting)
	for _, m := range meetings {
		key := m.Date.Format("2006-01")
		byMonth[key] = append(byMonth[key], m)
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	units := make([]ScopeUnit, 0, len(keys))
	for _, k := range keys {
		units = append(units, ScopeUnit{Key: k, Meetings: byMonth[k]})
	}
	return units
}

// PeriodUnits groups eligible meetings by their assigned period, in the
// given period order. Meetings without a period are not part of any
// period-scoped unit.
func PeriodUnits(periods []*domain.Period, meetings []*domain.Meeting, toEligible func(*domain.Meeting) EligibleMeeting) []ScopeUnit {
	byPeriod := make(map[string][]EligibleMeeting)
	for _, m := range meetings {
		if m.PeriodID == nil {
			continue
		}
		byPeriod[*m.PeriodID] = append(byPeriod[*m.PeriodID], toEligible(m))
	}

	units := make([]ScopeUnit, 0, len(periods))
	for _, p := range periods {
		units = append(units, ScopeUnit{Key: p.ID, Meetings: byPeriod[p.ID]})
	}
	return units
}
