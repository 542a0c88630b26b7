package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandeepkv93/taskquest/internal/model"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name  string
		done  []bool
		pts   int
		score int
		badge int
	}{
		{name: "empty", done: nil, pts: 100, score: 0},
		{name: "none done", done: []bool{false, false}, pts: 100, score: 0},
		{name: "some done", done: []bool{true, false, true}, pts: 100, score: 200},
		{name: "alternate points", done: []bool{true, true, true, true}, pts: 500, score: 2000, badge: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]model.Task, 0, len(tt.done))
			for _, d := range tt.done {
				tasks = append(tasks, model.Task{Completed: d})
			}
			p := Compute(tasks, tt.pts)
			assert.Equal(t, tt.score, p.Score)
			assert.Equal(t, len(tt.done), p.Total)
			assert.Equal(t, p.Total-p.Completed, p.Active)
			assert.Equal(t, tt.badge, p.Badges)
			assert.Equal(t, tt.badge*BadgeBonus, p.BonusScore)
		})
	}
}

func TestScoreMonotonicOnCompletion(t *testing.T) {
	tasks := []model.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	prev := Compute(tasks, DefaultPointsPerTask).Score
	for i := range tasks {
		tasks[i].Completed = true
		next := Compute(tasks, DefaultPointsPerTask).Score
		assert.Equal(t, prev+DefaultPointsPerTask, next)
		prev = next
	}
}

func TestProgressRatio(t *testing.T) {
	assert.Zero(t, Progress{}.Ratio())
	assert.InDelta(t, 0.5, Progress{Total: 4, Completed: 2}.Ratio(), 1e-9)
}
