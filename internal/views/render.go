package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
	Underground   bool
}

type palette struct {
	header lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	panel  lipgloss.Style
	footer lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
}

// Overworld is the bright daytime palette; underground swaps to blue brick.
var (
	overworld = palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("3")).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		accent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
	}
	underground = palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")).Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:  lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("6")).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		accent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Strikethrough(true),
	}
)

func paletteFor(under bool) palette {
	if under {
		return underground
	}
	return overworld
}

func RenderApp(data AppData) string {
	p := paletteFor(data.Underground)
	left := p.panel.Width(58).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := p.panel.Width(44).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := p.status.Render(data.StatusLine)
	if data.StatusIsError {
		status = p.err.Render(data.StatusLine)
	}

	lines := []string{
		p.header.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, p.panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, p.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
