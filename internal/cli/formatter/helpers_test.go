package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/annafors/planera/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTimeSpan(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"both set", "18:30", "20:00", "18:30–20:00"},
		{"start only", "18:30", "", "18:30"},
		{"neither", "", "", "--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeSpan(tt.start, tt.end))
		})
	}
}

func TestHumanDate(t *testing.T) {
	d := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Tue, Sep 2 2025", HumanDate(d))
}

func TestMeetingStatusPill(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)

	past := &domain.Meeting{MeetingDate: time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)}
	assert.Contains(t, MeetingStatusPill(past, now), "PAST")

	today := &domain.Meeting{MeetingDate: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)}
	assert.Contains(t, MeetingStatusPill(today, now), "OPEN")

	cancelled := &domain.Meeting{
		MeetingDate: time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC),
		IsCancelled: true,
	}
	assert.Contains(t, MeetingStatusPill(cancelled, now), "CANCELLED")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"1", "short"},
			{"2", "a much longer name"},
		},
	)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[2], "short")
	assert.Contains(t, lines[3], "a much longer name")
}

func TestFormatObjectiveTree_NestsChildren(t *testing.T) {
	parentID := "parent"
	objectives := []*domain.Objective{
		{ID: "parent", Title: "Outdoor skills"},
		{ID: "child", Title: "Knots", ParentID: &parentID},
	}

	out := FormatObjectiveTree(objectives, map[string]int{"child": 3})
	assert.Contains(t, out, "Outdoor skills")
	assert.Contains(t, out, "Knots")
	assert.Contains(t, out, "└── ")
	assert.Contains(t, out, "✔ 3")
}

func TestRatingStars(t *testing.T) {
	assert.Contains(t, ratingStars(0, 0), "--")
	assert.Contains(t, ratingStars(4.2, 5), "★★★★☆")
}
