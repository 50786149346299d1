package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/annafors/planera/internal/domain"
)

// FormatObjectiveTree renders a plan's objective forest with box-drawing
// branches, roots ordered by sort order then title.
func FormatObjectiveTree(objectives []*domain.Objective, achieved map[string]int) string {
	if len(objectives) == 0 {
		return RenderBox("Objectives", Dim("No objectives defined"))
	}

	children := make(map[string][]*domain.Objective)
	var roots []*domain.Objective
	for _, o := range objectives {
		if o.ParentID == nil {
			roots = append(roots, o)
			continue
		}
		children[*o.ParentID] = append(children[*o.ParentID], o)
	}
	order := func(list []*domain.Objective) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].SortOrder != list[j].SortOrder {
				return list[i].SortOrder < list[j].SortOrder
			}
			return list[i].Title < list[j].Title
		})
	}
	order(roots)
	for _, list := range children {
		order(list)
	}

	var b strings.Builder
	for i, root := range roots {
		renderObjectiveNode(&b, root, children, achieved, "", i == len(roots)-1)
	}
	return RenderBox("Objectives", strings.TrimRight(b.String(), "\n"))
}

func renderObjectiveNode(b *strings.Builder, o *domain.Objective, children map[string][]*domain.Objective, achieved map[string]int, prefix string, last bool) {
	branch := "├── "
	childPrefix := prefix + "│   "
	if last {
		branch = "└── "
		childPrefix = prefix + "    "
	}
	if prefix == "" {
		branch = ""
		childPrefix = "    "
	}

	label := Bold(o.Title)
	if o.PeriodID != nil {
		label += " " + StyleBlue.Render("[period]")
	}
	if n := achieved[o.ID]; n > 0 {
		label += " " + StyleGreen.Render(fmt.Sprintf("✔ %d", n))
	}
	b.WriteString(prefix + Dim(branch) + label + "\n")

	kids := children[o.ID]
	for i, kid := range kids {
		renderObjectiveNode(b, kid, children, achieved, childPrefix, i == len(kids)-1)
	}
}
