package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() *YearPlan {
	return &YearPlan{
		Title:          "Autumn 2025",
		StartDate:      day(2025, 9, 1),
		EndDate:        day(2025, 12, 15),
		MeetingWeekday: "tuesday",
		Pattern:        PatternWeekly,
	}
}

func TestYearPlanValidate_Accepts(t *testing.T) {
	assert.NoError(t, validPlan().Validate())
}

func TestYearPlanValidate_EndBeforeStart(t *testing.T) {
	p := validPlan()
	p.StartDate, p.EndDate = p.EndDate, p.StartDate
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "precedes")
}

func TestYearPlanValidate_UnknownPattern(t *testing.T) {
	p := validPlan()
	p.Pattern = "fortnightly"
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestYearPlanValidate_UnknownWeekday(t *testing.T) {
	p := validPlan()
	p.MeetingWeekday = "tisdag"
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestYearPlanValidate_InvertedBlackout(t *testing.T) {
	p := validPlan()
	p.Blackouts = []BlackoutRange{{Start: day(2025, 10, 20), End: day(2025, 10, 13)}}
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestYearPlanValidate_AnchorNeedsKnownType(t *testing.T) {
	p := validPlan()
	p.Anchors = []Anchor{{ID: "a1", Date: day(2025, 10, 7), Type: "birthday"}}
	assert.ErrorIs(t, p.Validate(), ErrValidation)

	p.Anchors[0].Type = AnchorCamp
	assert.NoError(t, p.Validate())
}

func TestBlackoutContains_InclusiveBounds(t *testing.T) {
	b := BlackoutRange{Start: day(2025, 10, 13), End: day(2025, 10, 19)}
	assert.True(t, b.Contains(day(2025, 10, 13)))
	assert.True(t, b.Contains(day(2025, 10, 19)))
	assert.False(t, b.Contains(day(2025, 10, 20)))
	assert.False(t, b.Contains(day(2025, 10, 12)))
}

func TestBlackoutContains_IgnoresClockTime(t *testing.T) {
	b := BlackoutRange{Start: day(2025, 10, 13), End: day(2025, 10, 13)}
	assert.True(t, b.Contains(time.Date(2025, 10, 13, 19, 0, 0, 0, time.UTC)))
}

func TestPeriodContains(t *testing.T) {
	p := &Period{StartDate: day(2025, 9, 1), EndDate: day(2025, 10, 31)}
	assert.True(t, p.Contains(day(2025, 9, 1)))
	assert.True(t, p.Contains(day(2025, 10, 31)))
	assert.False(t, p.Contains(day(2025, 11, 1)))
}

func TestPeriodValidate_EndBeforeStart(t *testing.T) {
	p := &Period{YearPlanID: "plan-1", Title: "First", StartDate: day(2025, 10, 1), EndDate: day(2025, 9, 1)}
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}
