package session

import "strings"

// Reference is an external link attached to a command (write-up, man page, ...)
type Reference struct {
	ID    int64
	Value string
}

// Command is one stored snippet
type Command struct {
	ID         int64       // Store-assigned, unique
	Text       string      // Command template, may contain [KEY] tokens
	Comment    string      // Free-text description
	Author     string      // Optional attribution
	References []Reference // Links added with `update references`
}

// Column names a searchable/updatable field of a Command
type Column int

const (
	ColumnCommand Column = iota
	ColumnComment
	ColumnAuthor
	ColumnReferences
)

var columnNames = map[Column]string{
	ColumnCommand:    "command",
	ColumnComment:    "comment",
	ColumnAuthor:     "author",
	ColumnReferences: "references",
}

func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColumn maps a user-facing column name to a Column
func ParseColumn(name string) (Column, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for col, n := range columnNames {
		if n == name {
			return col, true
		}
	}
	return 0, false
}

// SearchMode selects which column live searches filter on
type SearchMode int

const (
	SearchOff SearchMode = iota
	SearchByCommand
	SearchByComment
)

func (m SearchMode) String() string {
	switch m {
	case SearchByCommand:
		return "command"
	case SearchByComment:
		return "comment"
	default:
		return "off"
	}
}

// Column returns the store column the mode searches on
func (m SearchMode) Column() Column {
	if m == SearchByComment {
		return ColumnComment
	}
	return ColumnCommand
}

// ParseSearchMode maps a config name ("command", "comment") to a SearchMode
func ParseSearchMode(name string) (SearchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "command":
		return SearchByCommand, true
	case "comment":
		return SearchByComment, true
	default:
		return SearchOff, false
	}
}

// Direction is the direction of a Move
type Direction int

const (
	Up Direction = iota
	Down
)
