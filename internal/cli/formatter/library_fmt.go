package formatter

import (
	"fmt"
	"strings"

	"github.com/annafors/planera/internal/domain"
)

// FormatLibraryList renders the org's activity catalog.
func FormatLibraryList(items []*domain.ActivityLibraryItem) string {
	headers := []string{"ID", "NAME", "CATEGORY", "USED", "RATING", "STATE"}
	rows := make([][]string, 0, len(items))

	for _, item := range items {
		state := StyleGreen.Render("active")
		if !item.IsActive {
			state = Dim("retired")
		}
		used := Dim("never")
		if item.TimesUsed > 0 {
			used = StyleFg.Render(fmt.Sprintf("%d×", item.TimesUsed))
			if item.LastUsedDate != nil {
				used += Dim(" (" + item.LastUsedDate.Format(domain.DateLayout) + ")")
			}
		}
		rows = append(rows, []string{
			TruncID(item.ID),
			Bold(item.Name),
			StylePurple.Render(item.Category),
			used,
			ratingStars(item.AvgRating, item.RatingCount),
			state,
		})
	}

	return RenderBox("Activity library", RenderTable(headers, rows))
}

func ratingStars(avg float64, count int) string {
	if count == 0 {
		return Dim("--")
	}
	full := int(avg + 0.5)
	if full > 5 {
		full = 5
	}
	stars := strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	return StyleYellow.Render(stars) + Dim(fmt.Sprintf(" %.1f (%d)", avg, count))
}
