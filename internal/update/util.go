package update

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskquest/internal/store"
)

// typeInto appends printable runes directly and hands every other key to the
// input, which handles cursor movement and deletion.
func typeInto(in *textinput.Model, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
	default:
		next, _ := in.Update(msg)
		*in = next
	}
}

// authErrorText turns store auth failures into the line shown on the login
// screen. Unknown errors surface verbatim.
func authErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrInvalidCredentials):
		return "Invalid login credentials"
	case errors.Is(err, store.ErrEmailTaken):
		return "User already registered"
	case errors.Is(err, store.ErrWeakPassword):
		return "Password should be at least 6 characters"
	case errors.Is(err, store.ErrInvalidEmail):
		return "Unable to validate email address: invalid format"
	default:
		return err.Error()
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
