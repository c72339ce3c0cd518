package app

import (
	"fmt"

	"redox/internal/log"
	"redox/internal/session"
	"redox/internal/variables"
)

// Commit picks the highlighted result: it goes into the history, its
// substituted text goes to the clipboard, and it comes back with its variables.
func Commit(c *Context) (Output, error) {
	cmd, err := c.Session.Commit()
	if err != nil {
		return Output{}, err
	}
	text := c.Vars.Substitute(cmd.Text)
	out := Output{
		Kind:      OutputInfo,
		Command:   cmd,
		Variables: c.Vars.Extract(cmd.Text),
	}
	if err := c.Clipboard.WriteAll(text); err != nil {
		log.WarningLog.Printf("clipboard write failed: %v", err)
		return out, nil
	}
	out.Text = fmt.Sprintf("copied: %s to clipboard", text)
	return out, nil
}

// Copy writes the substituted text of the highlighted result, or of the
// current history entry, to the clipboard
func Copy(c *Context) (Output, error) {
	return copyWith(c, func(s string) string { return s })
}

// CopyEncoded is Copy with the substituted text percent-encoded
func CopyEncoded(c *Context) (Output, error) {
	return copyWith(c, variables.PercentEncode)
}

func copyWith(c *Context, transform func(string) string) (Output, error) {
	cmd, err := target(c.Session)
	if err != nil {
		return Output{}, err
	}
	text := transform(c.Vars.Substitute(cmd.Text))
	if err := c.Clipboard.WriteAll(text); err != nil {
		return Output{}, fmt.Errorf("write clipboard: %w", err)
	}
	return Output{Kind: OutputCopied, Text: text, Command: cmd}, nil
}

// Paste returns the clipboard text for the query buffer
func Paste(c *Context) (string, error) {
	text, err := c.Clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

func target(s *session.Session) (session.Command, error) {
	if cmd, ok := s.Selected(); ok {
		return cmd, nil
	}
	cmd, err := s.Current()
	if err != nil {
		return session.Command{}, session.ErrNoSelection
	}
	return cmd, nil
}
