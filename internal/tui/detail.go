package tui

import (
	"fmt"
	"strings"

	"redox/internal/session"
	"redox/internal/variables"
)

// renderInfo renders a command with its safety warnings and variables
func renderInfo(cmd session.Command, vars []variables.Variable, width int) string {
	var b strings.Builder

	if warnings := analyzeCommandSafety(cmd.Text); len(warnings) > 0 {
		b.WriteString(DangerHeaderStyle().Render("! Warnings"))
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString(DangerStyle().Render("  - " + w))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	field := func(label, value string) {
		b.WriteString(LabelStyle().Render(label + ": "))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Command id", fmt.Sprintf("%d", cmd.ID))
	field("author", cmd.Author)
	field("comment", cmd.Comment)
	field("pattern", StyleForGroup(session.GroupFor(cmd)).Render(session.Pattern(cmd.Text)))
	field("command", wrapText(cmd.Text, width))

	if len(cmd.References) > 0 {
		b.WriteString(LabelStyle().Render("references:"))
		b.WriteString("\n")
		for _, r := range cmd.References {
			b.WriteString("  " + r.Value + "\n")
		}
	}

	if len(vars) > 0 {
		b.WriteString("\n")
		b.WriteString(renderVariables("Variables", vars))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderVariables renders a titled KEY : value table
func renderVariables(title string, vars []variables.Variable) string {
	var b strings.Builder
	b.WriteString(TitleStyle().Render(title))
	b.WriteString("\n")
	b.WriteString(MutedStyle().Render(strings.Repeat("-", 28)))
	for _, v := range vars {
		value := v.Value
		if value == "" {
			value = MutedStyle().Render("(empty)")
		}
		fmt.Fprintf(&b, "\n%s : %s", VariableKeyStyle().Render(padRight(v.Key, 12)), value)
	}
	return b.String()
}

// safetyCheck defines a check function and its warning message
type safetyCheck struct {
	check   func(cmd string) bool
	warning string
}

var safetyChecks = []safetyCheck{
	{checkRecursiveRm, "Recursive file deletion"},
	{checkSimpleRm, "File deletion"},
	{checkSudo, "Runs with elevated privileges"},
	{checkChmod, "Changes file permissions"},
	{checkChown, "Changes file ownership"},
	{checkCurlPipeShell, "Downloads and pipes to shell"},
	{checkDd, "Direct disk/device operation"},
	{checkMkfs, "Filesystem creation"},
	{checkKill, "Process termination"},
	{checkGitForcePush, "Force push to remote"},
	{checkGitHardReset, "Hard reset (discards changes)"},
}

// analyzeCommandSafety returns warnings for a snippet about to be run
func analyzeCommandSafety(command string) []string {
	var warnings []string
	cmd := strings.ToLower(command)

	for _, sc := range safetyChecks {
		if sc.check(cmd) {
			warnings = append(warnings, sc.warning)
		}
	}
	return warnings
}

// hasCommand checks if cmd contains "name " or starts with "name\t"
func hasCommand(cmd, name string) bool {
	return strings.HasPrefix(cmd, name+" ") || strings.Contains(cmd, " "+name+" ") ||
		strings.Contains(cmd, ";"+name+" ") || strings.HasPrefix(cmd, name+"\t")
}

func checkRecursiveRm(cmd string) bool {
	if !hasCommand(cmd, "rm") {
		return false
	}
	return strings.Contains(cmd, "-rf") || strings.Contains(cmd, "-r ") || strings.Contains(cmd, " -fr")
}

func checkSimpleRm(cmd string) bool {
	return hasCommand(cmd, "rm") && !checkRecursiveRm(cmd)
}

func checkSudo(cmd string) bool {
	return hasCommand(cmd, "sudo")
}

func checkChmod(cmd string) bool {
	return strings.Contains(cmd, "chmod ")
}

func checkChown(cmd string) bool {
	return strings.Contains(cmd, "chown ")
}

func checkCurlPipeShell(cmd string) bool {
	i := strings.Index(cmd, "|")
	if i < 0 {
		return false
	}
	fetch, rest := cmd[:i], cmd[i+1:]
	hasFetch := strings.Contains(fetch, "curl") || strings.Contains(fetch, "wget")
	hasShell := strings.Contains(rest, "bash") || strings.Contains(rest, "sh")
	return hasFetch && hasShell
}

func checkDd(cmd string) bool {
	return hasCommand(cmd, "dd")
}

func checkMkfs(cmd string) bool {
	return strings.Contains(cmd, "mkfs")
}

func checkKill(cmd string) bool {
	return hasCommand(cmd, "kill") || hasCommand(cmd, "pkill") || hasCommand(cmd, "killall")
}

func checkGitForcePush(cmd string) bool {
	return strings.Contains(cmd, "git push") && (strings.Contains(cmd, "--force") || strings.Contains(cmd, " -f"))
}

func checkGitHardReset(cmd string) bool {
	return strings.Contains(cmd, "git reset --hard")
}

// wrapText wraps text at width runes, breaking long words
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		r := []rune(para)
		for len(r) > width {
			lines = append(lines, string(r[:width]))
			r = r[width:]
		}
		lines = append(lines, string(r))
	}
	return strings.Join(lines, "\n")
}
