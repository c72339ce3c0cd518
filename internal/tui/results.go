package tui

import (
	"fmt"
	"strings"

	"redox/internal/session"
)

const (
	selectHint  = "Select a result with the up/down arrow keys. Press enter to copy to the clipboard"
	overflowMsg = "Results exceed window height. Keep typing to reduce the number of results."
)

// renderResults renders the result list. The header line is the comment of
// the highlighted command, or the selection hint when nothing is highlighted.
// reserved is the number of lines the rest of the screen needs.
func (m Model) renderResults(reserved int) string {
	s := m.app.Session
	results := s.Results()
	if len(results) == 0 {
		return ""
	}
	if m.height > 0 && len(results)+1+reserved > m.height {
		return ErrorStyle().Render(overflowMsg)
	}

	var b strings.Builder
	selected, active := s.Selected()
	if active {
		b.WriteString(CommentStyle().Render("Comment: " + selected.Comment))
	} else {
		b.WriteString(MutedStyle().Render(selectHint))
	}

	for i, cmd := range results {
		b.WriteString("\n")
		b.WriteString(m.renderResult(cmd, active && i == s.SelectedIndex()))
	}
	return b.String()
}

// renderResult renders one result row, colored by its snippet group
func (m Model) renderResult(cmd session.Command, selected bool) string {
	style := StyleForGroup(session.GroupFor(cmd))
	if selected {
		style = style.Inherit(SelectedStyle())
	}
	line := fmt.Sprintf("(%d) - %s", cmd.ID, cmd.Text)
	if m.width > 0 {
		line = truncate(line, m.width)
	}
	return style.Render(line)
}

// truncate shortens a string to max runes with ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
