package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeySearch  // Enter search mode, or cycle the search column
	KeyHistory // List the history
	KeyCopy
	KeyCopyEncoded // Copy URL-encoded
	KeyPaste
	KeyEsc
	KeyQuit
)

// GlobalKeyStringsMap maps a key string to its KeyName
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"down":   KeyDown,
	"enter":  KeyEnter,
	"ctrl+r": KeySearch,
	"ctrl+h": KeyHistory,
	"ctrl+c": KeyCopy,
	"ctrl+u": KeyCopyEncoded,
	"ctrl+v": KeyPaste,
	"esc":    KeyEsc,
	"ctrl+q": KeyQuit,
}

// GlobalkeyBindings maps each KeyName to its binding and help text
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "select previous result"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "select next result"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "pick the selected command, or run the typed one"),
	),
	KeySearch: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "Enter quick search mode to dynamically find commands as you type. Repeat to change the searched column."),
	),
	KeyHistory: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "Display selectable history of already selected commands. Or type 'hist'."),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "Copy currently selected command to clipboard."),
	),
	KeyCopyEncoded: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "URL-encode and then copy currently selected command to clipboard."),
	),
	KeyPaste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "Paste from clipboard."),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Exit current mode."),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("ctrl+q", "Exit redox. Or type 'exit'."),
	),
}

// HelpOrder is the order keys are listed in the help text
var HelpOrder = []KeyName{
	KeySearch,
	KeyCopy,
	KeyCopyEncoded,
	KeyHistory,
	KeyPaste,
	KeyEsc,
	KeyQuit,
}
