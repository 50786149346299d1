package generation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/annafors/planera/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_WeeklyTuesdays(t *testing.T) {
	out, err := Generate(GenerateInput{
		StartDate:      date(2025, 9, 2), // a Tuesday
		EndDate:        date(2025, 9, 30),
		MeetingWeekday: "tuesday",
		Pattern:        domain.PatternWeekly,
	})
	require.NoError(t, err)

	want := []string{"2025-09-02", "2025-09-09", "2025-09-16", "2025-09-23", "2025-09-30"}
	require.Len(t, out, len(want))
	for i, s := range out {
		assert.Equal(t, want[i], s.Date.Format(domain.DateLayout))
		assert.False(t, s.IsCancelled)
		assert.Nil(t, s.AnchorID)
	}
}

func TestGenerate_BlackoutCancelsAndClears(t *testing.T) {
	out, err := Generate(GenerateInput{
		StartDate:      date(2025, 9, 2),
		EndDate:        date(2025, 9, 30),
		MeetingWeekday: "tuesday",
		Pattern:        domain.PatternWeekly,
		Blackouts: []domain.BlackoutRange{
			{Start: date(2025, 9, 9), End: date(2025, 9, 16), Label: "autumn break"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 5)

	for _, s := range out {
		day := s.Date.Format(domain.DateLayout)
		if day == "2025-09-09" || day == "2025-09-16" {
			assert.True(t, s.IsCancelled, "meeting on %s should be cancelled", day)
			assert.Equal(t, true, s.Metadata["blackout"])
			assert.Equal(t, "autumn break", s.Metadata["blackout_label"])
			assert.Empty(t, s.Theme)
			assert.Empty(t, s.Location)
			assert.Nil(t, s.AnchorID)
		} else {
			assert.False(t, s.IsCancelled, "meeting on %s should not be cancelled", day)
		}
	}
}

func TestGenerate_AnchorOnCadenceDate(t *testing.T) {
	out, err := Generate(GenerateInput{
		StartDate:      date(2025, 9, 2),
		EndDate:        date(2025, 9, 30),
		MeetingWeekday: "tuesday",
		Pattern:        domain.PatternWeekly,
		Anchors: []domain.Anchor{
			{ID: "a1", Date: date(2025, 9, 16), Type: domain.AnchorSpecialEvent, Theme: "Harvest night", Location: "Barn"},
			{ID: "a2", Date: date(2025, 9, 23), Type: domain.AnchorNoMeeting},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 5)

	byDate := map[string]MeetingSkeleton{}
	for _, s := range out {
		byDate[s.Date.Format(domain.DateLayout)] = s
	}

	special := byDate["2025-09-16"]
	assert.False(t, special.IsCancelled)
	assert.Equal(t, "Harvest night", special.Theme)
	assert.Equal(t, "Barn", special.Location)
	require.NotNil(t, special.AnchorID)
	assert.Equal(t, "a1", *special.AnchorID)

	suppressed := byDate["2025-09-23"]
	assert.True(t, suppressed.IsCancelled)
	require.NotNil(t, suppressed.AnchorID)
	assert.Equal(t, "a2", *suppressed.AnchorID)
}

func TestGenerate_OffCadenceAnchorAppended(t *testing.T) {
	out, err := Generate(GenerateInput{
		StartDate:      date(2025, 9, 2),
		EndDate:        date(2025, 9, 30),
		MeetingWeekday: "tuesday",
		Pattern:        domain.PatternWeekly,
		Anchors: []domain.Anchor{
			// A Saturday camp inside the season.
			{ID: "camp", Date: date(2025, 9, 20), Type: domain.AnchorCamp, Theme: "Fall camp"},
			// Off-cadence no_meeting anchors never materialize.
			{ID: "skip", Date: date(2025, 9, 21), Type: domain.AnchorNoMeeting},
			// outside the season, ignored
			{ID: "late", Date: date(2025, 10, 11), Type: domain.AnchorSpecialEvent},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 6)

	var campEntry *MeetingSkeleton
	for i := range out {
		if out[i].Date.Equal(date(2025, 9, 20)) {
			campEntry = &out[i]
		}
		assert.NotEqual(t, date(2025, 9, 21), out[i].Date)
		assert.NotEqual(t, date(2025, 10, 11), out[i].Date)
	}
	require.NotNil(t, campEntry, "off-cadence camp anchor should appear")
	assert.False(t, campEntry.IsCancelled)
	assert.Equal(t, "Fall camp", campEntry.Theme)

	// Appended entries keep the list sorted.
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].Date.Before(out[i].Date), "dates must be strictly increasing")
	}
}

func TestGenerate_SpecialEventBeatsBlackout(t *testing.T) {
	out, err := Generate(GenerateInput{
		StartDate:      date(2025, 9, 2),
		EndDate:        date(2025, 9, 30),
		MeetingWeekday: "tuesday",
		Pattern:        domain.PatternWeekly,
		Blackouts: []domain.BlackoutRange{
			{Start: date(2025, 9, 8), End: date(2025, 9, 19)},
		},
		Anchors: []domain.Anchor{
			{ID: "se", Date: date(2025, 9, 16), Type: domain.AnchorSpecialEvent, Theme: "Open house"},
			{ID: "hol", Date: date(2025, 9, 9), Type: domain.AnchorHoliday, Theme: "Holiday"},
		},
	})
	require.NoError(t, err)

	byDate := map[string]MeetingSkeleton{}
	for _, s := range out {
		byDate[s.Date.Format(domain.DateLayout)] = s
	}

	// special_event wins the tie-break.
	se := byDate["2025-09-16"]
	assert.False(t, se.IsCancelled)
	assert.Equal(t, "Open house", se.Theme)
	require.NotNil(t, se.AnchorID)

	// Other anchor types lose to the blackout and are cleared.
	hol := byDate["2025-09-09"]
	assert.True(t, hol.IsCancelled)
	assert.Empty(t, hol.Theme)
	assert.Nil(t, hol.AnchorID)
	assert.Equal(t, true, hol.Metadata["blackout"])
}

func TestGenerate_UnknownWeekdayIsError(t *testing.T) {
	_, err := Generate(GenerateInput{
		StartDate:      date(2025, 9, 2),
		EndDate:        date(2025, 9, 30),
		MeetingWeekday: "tuesdy",
		Pattern:        domain.PatternWeekly,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerate_InvertedRangeIsError(t *testing.T) {
	_, err := Generate(GenerateInput{
		StartDate:      date(2025, 9, 30),
		EndDate:        date(2025, 9, 2),
		MeetingWeekday: "tuesday",
		Pattern:        domain.PatternWeekly,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// TestGenerate_CadenceInvariants property-tests the plain-season case:
// strictly increasing dates, correct weekday, bounds respected, constant gap.
func TestGenerate_CadenceInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weekdays := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

	for trial := 0; trial < 200; trial++ {
		start := date(2025, 1, 1).AddDate(0, 0, rng.Intn(365))
		end := start.AddDate(0, 0, rng.Intn(300))
		weekday := weekdays[rng.Intn(len(weekdays))]
		pattern := domain.PatternWeekly
		gap := 7
		if rng.Intn(2) == 1 {
			pattern = domain.PatternBiweekly
			gap = 14
		}

		out, err := Generate(GenerateInput{
			StartDate:      start,
			EndDate:        end,
			MeetingWeekday: weekday,
			Pattern:        pattern,
		})
		require.NoError(t, err)

		wd, _ := domain.ParseWeekday(weekday)
		for i, s := range out {
			assert.Equal(t, wd, s.Date.Weekday(), "trial %d: wrong weekday", trial)
			assert.False(t, s.Date.Before(start), "trial %d: date before start", trial)
			assert.False(t, s.Date.After(end), "trial %d: date after end", trial)
			if i > 0 {
				assert.Equal(t, gap, int(s.Date.Sub(out[i-1].Date).Hours()/24),
					"trial %d: gap must equal cadence", trial)
			}
		}
	}
}
