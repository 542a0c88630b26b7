package game

import (
	"sort"
	"strings"

	"github.com/sandeepkv93/taskquest/internal/model"
)

// Filter is the user's current narrowing of the quest log. World only
// applies when ByWorld is set.
type Filter struct {
	World   model.World
	ByWorld bool
	Search  string
}

func (f Filter) Matches(t model.Task) bool {
	if f.ByWorld && t.World != f.World {
		return false
	}
	needle := strings.ToLower(f.Search)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), needle)
}

// Visible returns the tasks matching f, ordered by priority rank and then
// newest first. The input slice is not modified.
func Visible(tasks []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
