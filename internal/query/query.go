// Package query turns a line typed at the prompt into a Request.
package query

import (
	"errors"
	"fmt"
	"strings"

	"redox/internal/session"
)

var (
	ErrEmpty           = errors.New("empty input")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingTerm     = errors.New("missing search term")
	ErrMissingCommand  = errors.New("missing command text")
	ErrMissingColumn   = errors.New("missing column")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrMissingValue    = errors.New("missing value")
	ErrMissingVariable = errors.New("missing variable name")
)

// ParseError is a rejected input line. Msg is meant for the user.
type ParseError struct {
	Input string
	Msg   string
	Err   error
}

func (e *ParseError) Error() string { return e.Msg }

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(input string, err error, format string, args ...any) *ParseError {
	return &ParseError{Input: input, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Request is one of the request types below
type Request interface {
	request()
}

type (
	// Search lists the commands matching Term
	Search struct{ Term string }

	// Add inserts a new command
	Add struct{ Command, Comment string }

	// Update changes one column of the current command
	Update struct {
		Column  session.Column
		Content string
	}

	// Set defines a user variable
	Set struct{ Key, Value string }

	// Info shows the current command and its variables
	Info struct{}

	// Env lists the user variables
	Env struct{}

	// History lists the history as a result set
	History struct{}

	// Help shows help, optionally for one Topic ("add", "search")
	Help struct{ Topic string }

	// Exit quits the program
	Exit struct{}
)

func (Search) request()  {}
func (Add) request()     {}
func (Update) request()  {}
func (Set) request()     {}
func (Info) request()    {}
func (Env) request()     {}
func (History) request() {}
func (Help) request()    {}
func (Exit) request()    {}

// Parse reads one prompt line
func Parse(line string) (Request, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, parseErr(line, ErrEmpty, "Nothing to do.")
	}

	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "search":
		if rest == "" {
			return nil, parseErr(line, ErrMissingTerm, "You must supply a search term.\nExample: search reverse shell")
		}
		return Search{Term: rest}, nil
	case "add":
		return parseAdd(line, rest)
	case "update":
		return parseUpdate(line, rest)
	case "set":
		return parseSet(line, rest)
	case "info":
		return Info{}, nil
	case "env":
		return Env{}, nil
	case "hist", "history":
		return History{}, nil
	case "help":
		topic, _, _ := strings.Cut(rest, " ")
		return Help{Topic: strings.ToLower(topic)}, nil
	case "exit", "quit":
		return Exit{}, nil
	default:
		return nil, parseErr(line, ErrUnknownCommand, "Invalid command: %s. Type 'help' for a list of commands.", verb)
	}
}

// parseAdd splits `-c <command> [-d <comment>]`. The command text may itself
// contain " -d ", so the comment starts at the last marker.
func parseAdd(line, rest string) (Request, error) {
	body := " " + rest
	i := strings.Index(body, " -c ")
	if i < 0 {
		return nil, parseErr(line, ErrMissingCommand,
			"To add a command to the database you must include -c followed by the command\n-d with a description of the command is optional")
	}
	body = body[i+len(" -c "):]

	var comment string
	if j := strings.LastIndex(body, " -d "); j >= 0 {
		comment = strings.TrimSpace(body[j+len(" -d "):])
		body = body[:j]
	}

	cmd := strings.TrimSpace(body)
	if cmd == "" {
		return nil, parseErr(line, ErrMissingCommand, "You must supply the command text after -c.")
	}
	return Add{Command: cmd, Comment: comment}, nil
}

func parseUpdate(line, rest string) (Request, error) {
	name, content, _ := strings.Cut(rest, " ")
	if name == "" {
		return nil, parseErr(line, ErrMissingColumn,
			"You must supply a column name. See the currently selected command's 'info'")
	}
	col, ok := session.ParseColumn(name)
	if !ok {
		return nil, parseErr(line, ErrUnknownColumn,
			"Unknown column %s. Use comment, command, author or references.", name)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, parseErr(line, ErrMissingValue,
			"You must supply a value for column %s.\nExample: update %s content to add", name, name)
	}
	return Update{Column: col, Content: content}, nil
}

func parseSet(line, rest string) (Request, error) {
	key, value, found := strings.Cut(rest, "=")
	if !found || strings.ContainsAny(key, " \t") {
		key, value, _ = strings.Cut(rest, " ")
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if key == "" {
		return nil, parseErr(line, ErrMissingVariable,
			"You must supply a variable name and a value.\nExample: set LHOST 10.10.14.2")
	}
	if value == "" {
		return nil, parseErr(line, ErrMissingValue, "You must supply a value for variable %s.", key)
	}
	return Set{Key: key, Value: value}, nil
}
