// Package app executes prompt requests and key actions against the session,
// the variable store, the record store and the clipboard.
package app

import (
	"context"
	"errors"
	"fmt"

	"redox/internal/clipboard"
	"redox/internal/log"
	"redox/internal/query"
	"redox/internal/session"
	"redox/internal/variables"
)

// Store is the record store as seen by the dispatcher
type Store interface {
	session.Searcher
	Insert(ctx context.Context, text, comment string) (session.Command, error)
	Update(ctx context.Context, id int64, col session.Column, value string) (session.Command, error)
}

// Context is everything a request can touch. It is owned by the event loop.
type Context struct {
	Session   *session.Session
	Vars      *variables.Store
	Store     Store
	Clipboard clipboard.Clipboard
}

// OutputKind tells the display how to render an Output
type OutputKind int

const (
	OutputText      OutputKind = iota // Text only
	OutputList                        // Commands as a selectable list
	OutputInfo                        // Command with its Variables, plus optional Text
	OutputVariables                   // Variables (user variables)
	OutputCopied                      // Text was written to the clipboard
	OutputQuit
)

// Output is the result of a request, for the display
type Output struct {
	Kind      OutputKind
	Text      string
	Commands  []session.Command
	Command   session.Command
	Variables []variables.Variable
}

// UserError is a failure caused by the input; Msg is shown as is
type UserError struct {
	Msg string
}

func (e *UserError) Error() string { return e.Msg }

func userErrorf(format string, args ...any) error {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// Message turns an error from Execute or a key action into the text shown to
// the user. Errors that are not the user's doing are logged and reported
// generically.
func Message(err error) string {
	var perr *query.ParseError
	var uerr *UserError
	switch {
	case errors.As(err, &perr):
		return perr.Msg
	case errors.As(err, &uerr):
		return uerr.Msg
	case errors.Is(err, session.ErrEmptyHistory):
		return "History is currently empty."
	case errors.Is(err, session.ErrNoSelection):
		return "There isn't a command currently selected."
	default:
		log.ErrorLog.Printf("request failed: %v", err)
		return "Something went wrong, check your input."
	}
}

// Execute runs one parsed request
func Execute(ctx context.Context, c *Context, req query.Request) (Output, error) {
	switch r := req.(type) {
	case query.Search:
		return search(ctx, c, r)
	case query.Add:
		return add(ctx, c, r)
	case query.Update:
		return update(ctx, c, r)
	case query.Set:
		return set(c, r)
	case query.Info:
		return info(c)
	case query.Env:
		return env(c)
	case query.History:
		return history(c)
	case query.Help:
		return Output{Kind: OutputText, Text: HelpText(r.Topic)}, nil
	case query.Exit:
		return Output{Kind: OutputQuit}, nil
	default:
		return Output{}, fmt.Errorf("unhandled request %T", req)
	}
}

func search(ctx context.Context, c *Context, r query.Search) (Output, error) {
	cmds, err := c.Session.Search(ctx, r.Term)
	if err != nil {
		return Output{}, err
	}
	if len(cmds) == 0 {
		return Output{}, userErrorf("No results found for %s", r.Term)
	}
	return Output{Kind: OutputList, Commands: cmds}, nil
}

func add(ctx context.Context, c *Context, r query.Add) (Output, error) {
	cmd, err := c.Store.Insert(ctx, r.Command, r.Comment)
	if err != nil {
		return Output{}, err
	}
	c.Session.Remember(cmd)
	log.InfoLog.Printf("inserted command %d", cmd.ID)
	return Output{
		Kind: OutputText,
		Text: fmt.Sprintf("Inserted command: %s comment: %s", cmd.Text, cmd.Comment),
	}, nil
}

func update(ctx context.Context, c *Context, r query.Update) (Output, error) {
	cur, err := c.Session.Current()
	if err != nil {
		return Output{}, err
	}
	updated, err := c.Store.Update(ctx, cur.ID, r.Column, r.Content)
	if err != nil {
		return Output{}, err
	}
	c.Session.AddOrUpdate(updated)
	log.InfoLog.Printf("updated %s of command %d", r.Column, updated.ID)
	return Output{
		Kind:      OutputInfo,
		Command:   updated,
		Variables: c.Vars.Extract(updated.Text),
		Text:      fmt.Sprintf("Updated %s: %s", r.Column, r.Content),
	}, nil
}

func set(c *Context, r query.Set) (Output, error) {
	c.Vars.SetUserVariable(r.Key, r.Value)
	if cur, err := c.Session.Current(); err == nil {
		return Output{
			Kind:      OutputInfo,
			Command:   cur,
			Variables: c.Vars.Extract(cur.Text),
		}, nil
	}
	return Output{Kind: OutputVariables, Variables: c.Vars.UserVariables()}, nil
}

func info(c *Context) (Output, error) {
	cur, err := c.Session.Current()
	if err != nil {
		return Output{}, err
	}
	return Output{
		Kind:      OutputInfo,
		Command:   cur,
		Variables: c.Vars.Extract(cur.Text),
	}, nil
}

func env(c *Context) (Output, error) {
	vars := c.Vars.UserVariables()
	if len(vars) == 0 {
		return Output{}, userErrorf("No user variables have been set. Example: set LHOST 10.10.14.2")
	}
	return Output{Kind: OutputVariables, Variables: vars}, nil
}

func history(c *Context) (Output, error) {
	if err := c.Session.ShowHistory(); err != nil {
		return Output{}, err
	}
	return Output{Kind: OutputList, Commands: c.Session.Results()}, nil
}
