package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const titleWidth = 34

type HUDData struct {
	Player      string
	Hero        string
	Score       int
	Coins       int
	Level       string
	Lives       int
	Time        string
	Underground bool
}

type StageData struct {
	State       string
	Player      string
	Underground bool
}

type TaskItemData struct {
	ID       string
	Title    string
	Done     bool
	Priority string
	Level    string
	Deadline string
	Selected bool
}

type TaskListData struct {
	Items       []TaskItemData
	Search      string
	World       string
	ByWorld     bool
	CaptureView string
	Capturing   bool
	SearchView  string
	Searching   bool
	Underground bool
}

type TimerPanelData struct {
	Label        string
	Mode         string
	Clock        string
	ProgressView string
	Running      bool
}

type BadgePanelData struct {
	Name      string
	Count     int
	Bonus     int
	Completed int
	Active    int
}

type LoginData struct {
	Hero         string
	SignUp       bool
	EmailView    string
	PasswordView string
	Error        string
	Busy         bool
	SpinnerView  string
}

type GameOverData struct {
	Score int
	Lives int
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderHUD(data HUDData) string {
	p := paletteFor(data.Underground)
	cells := []string{
		fmt.Sprintf("%s %06d", strings.ToUpper(data.Player), data.Score),
		fmt.Sprintf("🪙x%02d", data.Coins),
		fmt.Sprintf("WORLD %s", data.Level),
		fmt.Sprintf("♥x%d", data.Lives),
		fmt.Sprintf("TIME %s", data.Time),
	}
	return p.accent.Render(data.Hero) + "\n" + strings.Join(cells, "   ")
}

var sprites = map[string][]string{
	"idle": {
		"   ___   ",
		"  (o o)  ",
		"  /| |\\  ",
	},
	"running": {
		"   ___   ",
		"  (o o)> ",
		"  _/ \\_  ",
	},
	"jumping": {
		"  \\___/  ",
		"  (^ ^)  ",
		"   / \\   ",
	},
	"fighting": {
		"   ___     ,,,",
		"  (>_<)--*{x x}",
		"  /| |\\    /|\\",
	},
	"victory": {
		"  \\___/  ★",
		"  (^o^)  ",
		"  /| |\\  ",
	},
	"mushroom-spawn": {
		"   ___   .-.",
		"  (o o) (o o)",
		"  /| |\\  | |",
	},
}

func stageCaption(state string) string {
	switch state {
	case "running":
		return "ON THE RUN"
	case "jumping":
		return "NEW MISSION! JUMP!"
	case "fighting":
		return "BOSS FIGHT!"
	case "victory":
		return "COURSE CLEAR!"
	case "mushroom-spawn":
		return "POWER UP!"
	default:
		return "READY"
	}
}

func RenderStage(data StageData) string {
	p := paletteFor(data.Underground)
	frame, ok := sprites[data.State]
	if !ok {
		frame = sprites["idle"]
	}
	ground := "▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀"
	if data.Underground {
		ground = "▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓"
	}
	return strings.Join(frame, "\n") + "\n" + ground + "\n" + p.accent.Render(stageCaption(data.State))
}

func RenderTaskList(data TaskListData) string {
	p := paletteFor(data.Underground)
	var b strings.Builder
	scope := "ALL WORLDS"
	if data.ByWorld {
		scope = strings.ToUpper(data.World)
	}
	b.WriteString(fmt.Sprintf("missions: %s", scope))
	if data.Search != "" {
		b.WriteString(fmt.Sprintf(" | search: %q", data.Search))
	}
	b.WriteString("\n")
	if data.Capturing {
		b.WriteString(data.CaptureView + "\n")
	}
	if data.Searching {
		b.WriteString(data.SearchView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("\n  NO MISSIONS ACTIVE\n  press [a] to add your first quest")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		box := "[ ]"
		title := ansi.Truncate(item.Title, titleWidth, "…")
		if item.Done {
			box = "[x]"
			title = p.muted.Render(title)
		}
		line := fmt.Sprintf("%s %s %s %s", cursor, box, priorityBadge(item.Priority), title)
		meta := item.Level
		if item.Deadline != "" {
			meta += " due:" + item.Deadline
		}
		b.WriteString(line + "  " + meta + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return "[!!!]"
	case "low":
		return "[ . ]"
	default:
		return "[ ! ]"
	}
}

func RenderTimerPanel(data TimerPanelData) string {
	state := "paused"
	if data.Running {
		state = "running"
	}
	return fmt.Sprintf("%s (%s) %s\n%s\n%s\nactions: [p]start/pause [r]reset [m]mode",
		data.Label, data.Mode, state, data.Clock, data.ProgressView)
}

func RenderBadgePanel(data BadgePanelData) string {
	stars := strings.Repeat("★", data.Count)
	if stars == "" {
		stars = "-"
	}
	return fmt.Sprintf("%s x%d %s\nbonus: +%d\ndone: %d  active: %d",
		data.Name, data.Count, stars, data.Bonus, data.Completed, data.Active)
}

func RenderLogin(data LoginData) string {
	var b strings.Builder
	b.WriteString(overworld.accent.Render(data.Hero) + "\n")
	mode := "SIGN IN"
	toggle := "no account? [ctrl+s] sign up"
	if data.SignUp {
		mode = "SIGN UP"
		toggle = "have an account? [ctrl+s] sign in"
	}
	b.WriteString(mode + "\n\n")
	b.WriteString(data.EmailView + "\n")
	b.WriteString(data.PasswordView + "\n\n")
	if data.Busy {
		b.WriteString(data.SpinnerView + " loading world...\n")
	}
	if data.Error != "" {
		b.WriteString(overworld.err.Render(data.Error) + "\n")
	}
	b.WriteString("[tab] switch field  [enter] start  " + toggle)
	return b.String()
}

func RenderGameOver(data GameOverData) string {
	return fmt.Sprintf("G A M E   O V E R\n\nscore: %06d\nlives left: %d\n\n[c] continue  [q] quit", data.Score, data.Lives)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}
