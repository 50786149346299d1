package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID shortens a UUID to its first 8 characters for display.
func TruncID(id string) string {
	if len(id) > 8 {
		return StyleDim.Render(id[:8])
	}
	return StyleDim.Render(id)
}

// HumanDate formats a date as "Tue, Sep 2 2025".
func HumanDate(t time.Time) string {
	return t.Format("Mon, Jan 2 2006")
}

// HumanTimestamp formats a timestamp as "Sep 2 2025 15:04".
func HumanTimestamp(t time.Time) string {
	return t.Format("Jan 2 2006 15:04")
}

// TimeSpan joins start and end clock times, degrading when either is unset.
func TimeSpan(start, end string) string {
	switch {
	case start == "" && end == "":
		return "--"
	case end == "":
		return start
	default:
		return start + "–" + end
	}
}
