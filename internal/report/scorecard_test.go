package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

func TestNewScorecardComputesProgress(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "a", Title: "Low", Priority: model.PriorityLow, World: model.WorldOverworld, Completed: true, CreatedAt: now},
		{ID: "b", Title: "High", Priority: model.PriorityHigh, World: model.WorldCastle, CreatedAt: now.Add(-time.Hour)},
	}
	sc := NewScorecard("mario@example.com", model.SagaMario, tasks, 100, now)
	if sc.Progress.Score != 100 || sc.Progress.Active != 1 {
		t.Fatalf("unexpected progress: %+v", sc.Progress)
	}
	if sc.Tasks[0].ID != "b" {
		t.Fatalf("expected priority order, got %s first", sc.Tasks[0].ID)
	}
}

func TestWritePDF(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	due := now.Add(48 * time.Hour)
	tasks := []model.Task{
		{ID: "a", Title: "Defeat Bowser", Priority: model.PriorityHigh, World: model.WorldCastle, Deadline: &due, CreatedAt: now},
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, NewScorecard("mario@example.com", model.SagaZelda, tasks, 100, now)); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf: %q", buf.Bytes()[:min(16, buf.Len())])
	}

	buf.Reset()
	if err := WritePDF(&buf, NewScorecard("nobody", model.SagaMario, nil, 100, now)); err != nil {
		t.Fatalf("write empty pdf: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected pdf bytes for empty scorecard")
	}
}

func TestWritePDFNilWriter(t *testing.T) {
	if err := WritePDF(nil, Scorecard{}); err == nil {
		t.Fatal("expected error for nil writer")
	}
}
