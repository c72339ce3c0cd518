// Package variables implements the [KEY] template tokens of stored commands.
//
// Two grammars are in play. Extraction only recognizes tokens whose payload is
// not purely numeric, so array indexes such as `${a[0]}` are not offered as
// variables. Substitution accepts any bracketed payload, optionally preceded
// by a backslash, and rewrites it only when a user variable of that name
// exists.
package variables

import (
	"regexp"
	"slices"
	"strings"
)

var (
	extractPattern    = regexp.MustCompile(`\[([^\[\]]+)\]`)
	substitutePattern = regexp.MustCompile(`\\?\[([^\[\]]+)\]`)
)

// Variable is a named template value. Keys are upper-case.
type Variable struct {
	Key   string
	Value string
}

// Store holds the user variables and the variables of the last extracted command
type Store struct {
	user map[string]string
	cmd  []Variable

	// KeepEscaped leaves `\[KEY]` untouched during substitution
	KeepEscaped bool
}

// New returns a store seeded with defaults
func New(defaults map[string]string) *Store {
	s := &Store{user: make(map[string]string, len(defaults))}
	for k, v := range defaults {
		s.SetUserVariable(k, v)
	}
	return s
}

// SetUserVariable stores value under the upper-cased key, replacing any earlier value
func (s *Store) SetUserVariable(key, value string) {
	s.user[strings.ToUpper(key)] = value
}

// UserVariable returns the value stored for key, matched case-insensitively
func (s *Store) UserVariable(key string) (string, bool) {
	v, ok := s.user[strings.ToUpper(key)]
	return v, ok
}

// UserVariables returns every user variable sorted by key
func (s *Store) UserVariables() []Variable {
	out := make([]Variable, 0, len(s.user))
	for k, v := range s.user {
		out = append(out, Variable{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b Variable) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// CommandVariables returns the variables found by the last Extract
func (s *Store) CommandVariables() []Variable {
	return slices.Clone(s.cmd)
}

// Extract finds the variable tokens of text in order of first appearance and
// makes them the current command variables. Each carries the user value of
// the same name, or "".
func (s *Store) Extract(text string) []Variable {
	var vars []Variable
	seen := make(map[string]bool)
	for _, m := range extractPattern.FindAllStringSubmatch(text, -1) {
		if isNumeric(m[1]) {
			continue
		}
		key := strings.ToUpper(m[1])
		if seen[key] {
			continue
		}
		seen[key] = true
		vars = append(vars, Variable{Key: key, Value: s.user[key]})
	}
	s.cmd = vars
	return slices.Clone(vars)
}

// Substitute replaces every token that names a user variable with its value.
// Tokens without a value are left as written.
func (s *Store) Substitute(text string) string {
	return substitutePattern.ReplaceAllStringFunc(text, func(token string) string {
		escaped := strings.HasPrefix(token, `\`)
		if escaped && s.KeepEscaped {
			return token
		}
		key := token[1 : len(token)-1]
		if escaped {
			key = token[2 : len(token)-1]
		}
		if v, ok := s.user[strings.ToUpper(key)]; ok {
			return v
		}
		return token
	})
}

// PercentEncode escapes every byte outside A-Z a-z 0-9 - _ . ~ as %XX
func PercentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
