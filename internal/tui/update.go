package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"redox/internal/app"
	"redox/internal/keys"
	"redox/internal/log"
	"redox/internal/query"
	"redox/internal/session"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(0, msg.Width-len(m.prompt())-1)
		return m, nil

	case storeChangedMsg:
		if err := m.app.Session.Refresh(context.Background()); err != nil {
			log.WarningLog.Printf("refresh after change of %s: %v", msg.Path, err)
		}
		return m, m.watchStoreCmd()

	case watchErrMsg:
		log.WarningLog.Printf("database watcher: %v", msg.error)
		return m, m.watchStoreCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m.handleTyping(msg)
	}

	ctx := context.Background()
	s := m.app.Session

	switch name {
	case keys.KeyQuit:
		m.quitting = true
		return m, tea.Quit

	case keys.KeySearch:
		s.EnterSearch()
		m.clearOutput()
		m.showResults = true
		if err := s.Query(ctx, m.input.Value()); err != nil {
			m.fail(err)
		}

	case keys.KeyHistory:
		m.execute(ctx, query.History{})

	case keys.KeyUp:
		s.Move(session.Up)
		m.showResults = len(s.Results()) > 0

	case keys.KeyDown:
		s.Move(session.Down)
		m.showResults = len(s.Results()) > 0

	case keys.KeyEnter:
		return m.handleEnter(ctx)

	case keys.KeyCopy:
		m.apply(app.Copy(m.app))

	case keys.KeyCopyEncoded:
		m.apply(app.CopyEncoded(m.app))

	case keys.KeyPaste:
		text, err := app.Paste(m.app)
		if err != nil {
			m.fail(err)
			break
		}
		m.input.SetValue(m.input.Value() + strings.TrimRight(text, "\r\n"))
		m.input.CursorEnd()
		if s.Mode() != session.SearchOff {
			if err := s.Query(ctx, m.input.Value()); err != nil {
				m.fail(err)
			}
		}

	case keys.KeyEsc:
		s.Reset()
		m.input.Reset()
		m.clearOutput()
		m.showResults = false
	}
	return m, nil
}

// handleTyping edits the query buffer. While searching every edit re-runs the
// live query.
func (m Model) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	s := m.app.Session
	if s.Mode() != session.SearchOff && m.input.Value() != before {
		m.errMsg = ""
		m.showResults = true
		if err := s.Query(context.Background(), m.input.Value()); err != nil {
			m.fail(err)
		}
	}
	return m, cmd
}

// handleEnter commits the highlighted result, or runs the typed request
func (m Model) handleEnter(ctx context.Context) (tea.Model, tea.Cmd) {
	s := m.app.Session
	if s.SelectionActive() {
		m.apply(app.Commit(m.app))
		m.input.Reset()
		return m, nil
	}
	if s.Mode() != session.SearchOff {
		// nothing picked yet: the buffer is a search term, not a request
		return m, nil
	}

	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	req, err := query.Parse(line)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.execute(ctx, req)
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) execute(ctx context.Context, req query.Request) {
	m.apply(app.Execute(ctx, m.app, req))
}

// apply shows the outcome of a request or key action
func (m *Model) apply(out app.Output, err error) {
	if err != nil {
		m.fail(err)
		return
	}
	m.errMsg = ""
	m.output = out
	m.showResults = out.Kind == app.OutputList
	if out.Kind == app.OutputQuit {
		m.quitting = true
	}
}

func (m *Model) fail(err error) {
	m.errMsg = app.Message(err)
}

func (m *Model) clearOutput() {
	m.output = app.Output{}
	m.errMsg = ""
}
