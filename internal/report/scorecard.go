package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sandeepkv93/taskquest/internal/game"
	"github.com/sandeepkv93/taskquest/internal/model"
)

type Scorecard struct {
	Player      string
	Saga        model.Saga
	Tasks       []model.Task
	Progress    game.Progress
	GeneratedAt time.Time
}

func NewScorecard(player string, saga model.Saga, tasks []model.Task, pointsPerTask int, now time.Time) Scorecard {
	return Scorecard{
		Player:      player,
		Saga:        saga,
		Tasks:       game.Visible(tasks, game.Filter{}),
		Progress:    game.Compute(tasks, pointsPerTask),
		GeneratedAt: now,
	}
}

// WritePDF renders the scorecard as a one-page A4 PDF.
func WritePDF(w io.Writer, sc Scorecard) error {
	if w == nil {
		return errors.New("report: nil writer")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quest Scorecard", true)
	pdf.SetCreationDate(sc.GeneratedAt)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("%s Scorecard", sc.Saga.HeroLabel()))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Player: %s", sc.Player))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", sc.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	p := sc.Progress
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	lines := []string{
		fmt.Sprintf("Score: %06d", p.Score),
		fmt.Sprintf("Missions completed: %d of %d", p.Completed, p.Total),
		fmt.Sprintf("Missions active: %d", p.Active),
		fmt.Sprintf("%s x%d (+%d bonus)", sc.Saga.BadgeName(), p.Badges, p.BonusScore),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Missions")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	if len(sc.Tasks) == 0 {
		pdf.Cell(0, 8, "  - No missions active.")
		pdf.Ln(8)
	}
	for _, t := range sc.Tasks {
		status := "[ ]"
		if t.Completed {
			status = "[x]"
		}
		line := fmt.Sprintf("%s %s  (%s, %s)", status, t.Title, t.World.Level(), t.Priority)
		if t.Deadline != nil {
			line += "  due " + t.Deadline.Format("2006-01-02")
		}
		pdf.MultiCell(0, 7, line, "", "", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("report: build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: write pdf: %w", err)
	}
	return nil
}
