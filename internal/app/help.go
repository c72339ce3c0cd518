package app

import (
	"fmt"
	"strings"

	"redox/internal/keys"
)

const helpWidth = 10

var commandHelp = [][2]string{
	{"search", "Search commands, e.g. 'search reverse shell'."},
	{"info", "Display info on the currently selected command."},
	{"env", "Show user variables that have already been set."},
	{"set", "Set a user variable, e.g. 'set LHOST 10.10.14.2'."},
	{"add", "Add a command to the database, e.g. 'add -c stty raw -echo;fg'."},
	{"update", "Update a column of the selected command: comment, command, author or references.\n" +
		strings.Repeat(" ", helpWidth) + "Example: update references http://blog.gregscharf.com"},
	{"hist", "Display selectable history of already selected commands."},
	{"help", "Display help. 'help add' and 'help search' go into detail."},
	{"exit", "Exit redox."},
}

// HelpText returns the help for topic ("add", "search" or "" for everything)
func HelpText(topic string) string {
	switch topic {
	case "add":
		return "To add a command to the database\n'add -c command [optional: -d comment]'"
	case "search":
		return helpLine(keys.KeySearch) + "\n" + helpLine(keys.KeyEsc) +
			"\nOr use 'search' command followed by a term to search results."
	}

	var b strings.Builder
	for _, k := range keys.HelpOrder {
		b.WriteString(helpLine(k))
		b.WriteString("\n")
	}
	for _, c := range commandHelp {
		fmt.Fprintf(&b, "%-*s%s\n", helpWidth, c[0], c[1])
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func helpLine(k keys.KeyName) string {
	h := keys.GlobalkeyBindings[k].Help()
	return fmt.Sprintf("%-*s%s", helpWidth, h.Key, h.Desc)
}
