package session

import (
	"strings"

	"redox/internal/config"
)

// subcommandDepth defines how many subcommand levels to capture for each command.
// Commands not in this map get depth 0 (command only, no subcommands).
var subcommandDepth = map[string]int{
	// Version control
	"git": 1,

	// Containers/VMs
	"podman":  1,
	"docker":  1,
	"kubectl": 1,
	"helm":    1,

	// System services
	"systemctl":  1,
	"journalctl": 0,
	"ip":         1,

	// Cloud
	"aws":    2,
	"gcloud": 2,
	"az":     2,

	// Offensive tooling
	"crackmapexec": 1,
	"netexec":      1,
	"nxc":          1,
	"msfvenom":     0,

	// Build tools
	"go":    1,
	"cargo": 1,
	"npm":   1,
	"pip":   1,
	"make":  1,

	"gh":   1,
	"tmux": 1,
}

// Pattern classifies a command template into a grouping pattern.
// Format: [sudo:]<command>[:<subcommand>]:*
func Pattern(text string) string {
	text = strings.TrimSpace(firstSegment(text))
	words := strings.Fields(text)

	words = skipEnvVars(words)
	if len(words) == 0 {
		return ""
	}

	hasSudo := words[0] == "sudo"
	if hasSudo {
		words = skipSudoFlags(words[1:])
	}

	words = unwrapCommand(words)

	if len(words) > 0 && isShell(words[0]) {
		words = extractShellCommand(words)
	}

	var parts []string
	if hasSudo {
		parts = append(parts, "sudo")
	}
	if len(words) > 0 {
		parts = append(parts, words[0])
		parts = append(parts, extractSubcommands(words[0], words[1:])...)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ":") + ":*"
}

// GroupFor returns the configured snippet group for a command, or nil
func GroupFor(cmd Command) *config.SnippetGroup {
	return config.Global().GetGroup(Pattern(cmd.Text))
}

// firstSegment cuts a pipeline or command list down to its first command
func firstSegment(text string) string {
	if i := strings.IndexAny(text, "|;&"); i >= 0 {
		return text[:i]
	}
	return text
}

// extractSubcommands extracts subcommands from args based on the command's depth
func extractSubcommands(cmd string, args []string) []string {
	depth := subcommandDepth[cmd]
	if depth == 0 || len(args) == 0 {
		return nil
	}

	var subcommands []string
	for i := 0; i < depth && len(args) > 0; i++ {
		args = skipFlags(args)
		// a template token is not a subcommand
		if len(args) == 0 || strings.HasPrefix(args[0], "[") {
			break
		}
		subcommands = append(subcommands, args[0])
		args = args[1:]
	}
	return subcommands
}

// skipFlags skips leading flag arguments
func skipFlags(args []string) []string {
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		args = args[1:]
	}
	return args
}

// skipEnvVars skips environment variable assignments at the start of a command
func skipEnvVars(words []string) []string {
	for len(words) > 0 && strings.Contains(words[0], "=") && !strings.HasPrefix(words[0], "-") {
		words = words[1:]
	}
	return words
}

// skipSudoFlags advances past sudo flags and returns remaining words
func skipSudoFlags(words []string) []string {
	for len(words) > 0 {
		w := words[0]
		if !strings.HasPrefix(w, "-") {
			return words
		}
		// Flags that take an argument
		if w == "-u" || w == "-g" || w == "-C" || w == "-D" || w == "-h" || w == "-p" {
			if len(words) > 1 {
				words = words[2:]
			} else {
				words = words[1:]
			}
		} else {
			words = words[1:]
		}
	}
	return words
}

// unwrapCommand handles command wrappers like env, time, nice, etc.
func unwrapCommand(words []string) []string {
	if len(words) == 0 {
		return words
	}

	switch words[0] {
	case "env":
		for i := 1; i < len(words); i++ {
			if strings.Contains(words[i], "=") || strings.HasPrefix(words[i], "-") {
				continue
			}
			return words[i:]
		}
		return nil
	case "time", "nohup", "strace", "proxychains", "proxychains4", "torsocks":
		return words[1:]
	case "nice":
		for i := 1; i < len(words); i++ {
			if words[i] == "-n" && i+1 < len(words) {
				i++
				continue
			}
			if strings.HasPrefix(words[i], "-") {
				continue
			}
			return words[i:]
		}
		return nil
	default:
		return words
	}
}

func isShell(cmd string) bool {
	return cmd == "bash" || cmd == "sh" || cmd == "zsh"
}

// extractShellCommand extracts the command from "sh -c 'command'"
func extractShellCommand(words []string) []string {
	for i := 1; i < len(words); i++ {
		if words[i] == "-c" && i+1 < len(words) {
			sub := strings.Join(words[i+1:], " ")
			sub = strings.Trim(strings.TrimSpace(sub), "'\"")
			return strings.Fields(sub)
		}
	}
	return words
}
