package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskquest/internal/model"
)

var base = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func task(id, title string, p model.Priority, w model.World, age time.Duration) model.Task {
	return model.Task{
		ID:        id,
		Title:     title,
		OwnerID:   "user-1",
		World:     w,
		Priority:  p,
		CreatedAt: base.Add(-age),
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestVisibleOrdersByPriorityThenNewest(t *testing.T) {
	tasks := []model.Task{
		task("low-new", "Collect coins", model.PriorityLow, model.WorldOverworld, 0),
		task("med-new", "Break bricks", model.PriorityMedium, model.WorldOverworld, time.Minute),
		task("high-old", "Defeat Bowser", model.PriorityHigh, model.WorldOverworld, time.Hour),
		task("med-old", "Find star", model.PriorityMedium, model.WorldOverworld, 2*time.Hour),
		task("high-new", "Save Peach", model.PriorityHigh, model.WorldOverworld, 2*time.Minute),
	}

	got := Visible(tasks, Filter{})
	assert.Equal(t, []string{"high-new", "high-old", "med-new", "med-old", "low-new"}, ids(got))
	assert.Equal(t, "low-new", tasks[0].ID, "input must not be reordered")
}

func TestVisibleFiltersWorldAndSearch(t *testing.T) {
	tasks := []model.Task{
		task("a", "Warp Zone run", model.PriorityMedium, model.WorldPipe, 0),
		task("b", "Castle siege", model.PriorityMedium, model.WorldCastle, time.Minute),
		task("c", "warp to 8-1", model.PriorityHigh, model.WorldPipe, 2*time.Minute),
		task("d", "Plumbing", model.PriorityLow, model.WorldPipe, 3*time.Minute),
	}

	got := Visible(tasks, Filter{World: model.WorldPipe, ByWorld: true, Search: "WARP"})
	assert.Equal(t, []string{"c", "a"}, ids(got))

	got = Visible(tasks, Filter{World: model.WorldPipe, Search: "castle"})
	assert.Equal(t, []string{"b"}, ids(got), "world is ignored unless ByWorld is set")

	got = Visible(tasks, Filter{World: model.WorldOverworld, ByWorld: true})
	assert.Empty(t, got)
}

func TestVisibleStableAndIdempotent(t *testing.T) {
	tasks := []model.Task{
		task("x1", "same", model.PriorityMedium, model.WorldOverworld, time.Minute),
		task("x2", "same", model.PriorityMedium, model.WorldOverworld, time.Minute),
		task("x3", "same", model.PriorityHigh, model.WorldOverworld, time.Minute),
	}
	f := Filter{Search: "sa"}

	once := Visible(tasks, f)
	require.Equal(t, []string{"x3", "x1", "x2"}, ids(once))
	assert.Equal(t, once, Visible(once, f))
}

func TestVisibleEmpty(t *testing.T) {
	got := Visible(nil, Filter{Search: "anything"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterEmptySearchMatchesAll(t *testing.T) {
	f := Filter{}
	assert.True(t, f.Matches(task("a", "", model.PriorityLow, model.WorldCastle, 0)))
}
