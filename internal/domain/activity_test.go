package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibraryItemRecordRating_RunningAverage(t *testing.T) {
	item := &ActivityLibraryItem{}
	item.RecordRating(4)
	item.RecordRating(5)
	item.RecordRating(3)

	assert.Equal(t, 3, item.RatingCount)
	assert.InDelta(t, 4.0, item.AvgRating, 0.001)
}

func TestLibraryItemRecordRating_FirstRating(t *testing.T) {
	item := &ActivityLibraryItem{}
	item.RecordRating(2)
	assert.Equal(t, 1, item.RatingCount)
	assert.InDelta(t, 2.0, item.AvgRating, 0.001)
}

func TestLibraryItemValidate_DurationBounds(t *testing.T) {
	item := &ActivityLibraryItem{Name: "Knot relay", MinDurationMinutes: 45, MaxDurationMinutes: 30}
	assert.ErrorIs(t, item.Validate(), ErrValidation)

	item.MaxDurationMinutes = 60
	assert.NoError(t, item.Validate())

	// zero max means unbounded
	item.MaxDurationMinutes = 0
	assert.NoError(t, item.Validate())
}

func TestLibraryItemValidate_NameRequired(t *testing.T) {
	item := &ActivityLibraryItem{}
	assert.ErrorIs(t, item.Validate(), ErrValidation)
}

func TestMeetingActivityValidate(t *testing.T) {
	a := &MeetingActivity{MeetingID: "m-1", Name: "Opening circle"}
	assert.NoError(t, a.Validate())

	a.Name = ""
	assert.ErrorIs(t, a.Validate(), ErrValidation)

	a.Name = "Opening circle"
	a.DurationMinutes = -1
	assert.ErrorIs(t, a.Validate(), ErrValidation)
}
