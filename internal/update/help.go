package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskquest/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) missionBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "a", Action: "add mission"},
		{Key: "j/k", Action: "move cursor"},
		{Key: "space", Action: "complete / reopen"},
		{Key: "d", Action: "delete mission"},
		{Key: "w", Action: "next world"},
		{Key: "s", Action: "search"},
	}
}

func (m Model) gameBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "p", Action: "start/pause timer"},
		{Key: "r", Action: "reset timer"},
		{Key: "m", Action: "next timer mode"},
		{Key: "t", Action: "overworld / underground"},
		{Key: "S", Action: "next saga"},
		{Key: "g", Action: "give up"},
		{Key: "/", Action: "command palette"},
		{Key: "?", Action: "toggle help"},
		{Key: "L", Action: "sign out"},
		{Key: "q", Action: "quit"},
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func (m Model) helpKeys() helpKeyMap {
	missions := toKeyBindings(m.missionBindings())
	game := toKeyBindings(m.gameBindings())
	return helpKeyMap{
		short: []key.Binding{missions[0], missions[2], game[0], game[6], game[7], game[9]},
		full:  [][]key.Binding{missions, game},
	}
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# How to play\n\n")
	b.WriteString("| key | action |\n|---|---|\n")
	for _, kb := range append(m.missionBindings(), m.gameBindings()...) {
		b.WriteString(fmt.Sprintf("| `%s` | %s |\n", kb.Key, kb.Action))
	}
	b.WriteString("\nQuick add accepts `p:high`, `w:castle` and `due:2026-12-31`.\n")
	b.WriteString("Palette commands: `add`, `world`, `search`, `saga`, `timer`.\n")
	return b.String()
}

// renderHelpView fills the help viewport with the rendered key table.
func (m *Model) renderHelpView() string {
	m.helpViewport.SetContent(views.RenderMarkdown(m.helpMarkdown()))
	plain := make([]string, 0, len(m.gameBindings()))
	for _, kb := range m.gameBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpViewport.View(),
	})
}

func (m Model) shortHelp() string {
	return m.helpModel.View(m.helpKeys())
}
