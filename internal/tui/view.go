package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"redox/internal/app"
)

// View renders the UI based on the model state
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Prompt and help footer always take two lines
	const reserved = 2

	var b strings.Builder
	body := m.renderBody(reserved)
	if body != "" {
		if m.height > 0 && lipgloss.Height(body)+reserved > m.height {
			body = ErrorStyle().Render(overflowMsg)
		}
		b.WriteString(body)
		b.WriteString("\n")
	}

	b.WriteString(m.renderPrompt())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderBody renders the output of the last action, or the result list while
// the user is browsing it
func (m Model) renderBody(reserved int) string {
	if m.errMsg != "" {
		return ErrorStyle().Render(m.errMsg)
	}
	if m.showResults {
		return m.renderResults(reserved)
	}

	switch m.output.Kind {
	case app.OutputInfo:
		info := renderInfo(m.output.Command, m.output.Variables, max(20, m.width-12))
		if m.output.Text != "" {
			info = SuccessStyle().Render(m.output.Text) + "\n\n" + info
		}
		return info
	case app.OutputVariables:
		return renderVariables("User Variables", m.output.Variables)
	case app.OutputCopied:
		return SuccessStyle().Render(fmt.Sprintf("copied: %s to clipboard", m.output.Text))
	case app.OutputText:
		return m.output.Text
	default:
		return ""
	}
}

// prompt returns the prompt text: the current history id and the mode
func (m Model) prompt() string {
	p := "redox"
	if cur, err := m.app.Session.Current(); err == nil {
		p += fmt.Sprintf("[%d]", cur.ID)
	}
	if mode := m.app.Session.CurrentMode(); mode != "" {
		p += "(" + mode + ")"
	}
	return p + ":"
}

func (m Model) renderPrompt() string {
	p := m.prompt()
	if i := strings.IndexAny(p, "(:"); i >= 0 {
		p = PromptStyle().Render(p[:i]) + ModeStyle().Render(p[i:len(p)-1]) + PromptStyle().Render(":")
	}
	return p + m.input.View()
}

// renderHelp renders the help footer
func (m Model) renderHelp() string {
	help := []string{"ctrl+r:search", "↑/↓:select", "enter:pick", "ctrl+h:history", "esc:reset", "ctrl+q:quit", "help"}
	return HelpStyle().Render(strings.Join(help, " | "))
}

// padRight pads a string with spaces on the right to reach target width
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
