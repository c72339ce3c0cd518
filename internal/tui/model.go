package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"redox/internal/app"
	"redox/internal/store"
)

// Model is the interactive prompt: a query buffer, the output of the last
// request and the result list of the session
type Model struct {
	app     *app.Context
	watcher *store.Watcher

	input textinput.Model

	// Output of the last request or key action
	output app.Output
	// errMsg replaces the output when the last action failed
	errMsg string
	// showResults is set while the result list is what the user is looking at
	showResults bool

	width  int
	height int

	quitting bool
}

// ModelOptions configures NewModel
type ModelOptions struct {
	// Watcher, when set, refreshes the results on database changes
	Watcher *store.Watcher
}

// NewModel creates a Model around the request context
func NewModel(c *app.Context, opts ModelOptions) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()

	return Model{
		app:     c,
		watcher: opts.Watcher,
		input:   ti,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.watchStoreCmd())
}

// Message types
type (
	storeChangedMsg store.ChangeEvent
	watchErrMsg     struct{ error }
)

// watchStoreCmd waits for the next database change
func (m Model) watchStoreCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		select {
		case ev := <-w.Events:
			return storeChangedMsg(ev)
		case err := <-w.Errors:
			return watchErrMsg{err}
		}
	}
}

// Quitting reports whether the user asked to leave
func (m Model) Quitting() bool { return m.quitting }
