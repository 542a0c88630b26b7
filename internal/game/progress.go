package game

import "github.com/sandeepkv93/taskquest/internal/model"

const (
	DefaultPointsPerTask = 100
	BadgeEvery           = 3
	BadgeBonus           = 1000
)

type Progress struct {
	Total      int
	Completed  int
	Active     int
	Score      int
	Badges     int
	BonusScore int
}

func Compute(tasks []model.Task, pointsPerTask int) Progress {
	var p Progress
	p.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	p.Active = p.Total - p.Completed
	p.Score = p.Completed * pointsPerTask
	p.Badges = p.Completed / BadgeEvery
	p.BonusScore = p.Badges * BadgeBonus
	return p
}

// Ratio is the completed fraction in [0,1]; zero for an empty log.
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}
