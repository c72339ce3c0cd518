package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrEmptyHistory = errors.New("history is empty")
	ErrNoSelection  = errors.New("no command selected")
)

// Searcher is the part of the record store the session reads from
type Searcher interface {
	Search(ctx context.Context, column Column, term string) ([]Command, error)
}

// Session is the navigation state of one interactive run: the live result
// list, the selection inside it, the search mode and the history of committed
// commands.
//
// Every command the session has seen lives once in the arena, keyed by id.
// Results and history only hold ids, so an edited command shows up the same
// way in both lists.
type Session struct {
	store Searcher

	arena   map[int64]Command
	results []int64
	history ledger

	mode  SearchMode
	modes []SearchMode

	historyMode     bool
	selectionActive bool
	selectedResult  int

	lastQuery  string
	lastColumn Column
}

// New returns an idle session. modes is the cycle order for EnterSearch;
// it defaults to command then comment.
func New(store Searcher, modes []SearchMode) *Session {
	enabled := make([]SearchMode, 0, len(modes))
	for _, m := range modes {
		if m != SearchOff && !slices.Contains(enabled, m) {
			enabled = append(enabled, m)
		}
	}
	if len(enabled) == 0 {
		enabled = []SearchMode{SearchByCommand, SearchByComment}
	}
	return &Session{
		store: store,
		arena: make(map[int64]Command),
		modes: enabled,
	}
}

// Mode returns the current search mode
func (s *Session) Mode() SearchMode { return s.mode }

// HistoryMode reports whether the result list is showing the history
func (s *Session) HistoryMode() bool { return s.historyMode }

// SelectionActive reports whether a result is highlighted
func (s *Session) SelectionActive() bool { return s.selectionActive }

// SelectedIndex returns the highlighted position in the result list
func (s *Session) SelectedIndex() int { return s.selectedResult }

// CurrentMode returns the prompt label of the session state
func (s *Session) CurrentMode() string {
	switch {
	case s.historyMode:
		return "history"
	case s.mode != SearchOff:
		return fmt.Sprintf("find[%s]", s.mode)
	default:
		return ""
	}
}

// EnterSearch turns searching on, or advances to the next enabled mode when
// already searching. It returns the new mode.
func (s *Session) EnterSearch() SearchMode {
	s.historyMode = false
	if s.mode == SearchOff {
		s.mode = s.modes[0]
		return s.mode
	}
	i := slices.Index(s.modes, s.mode)
	s.mode = s.modes[(i+1)%len(s.modes)]
	return s.mode
}

// Query re-runs the live search for the typed text. It does nothing when
// searching is off. An empty text clears the results without asking the store.
func (s *Session) Query(ctx context.Context, text string) error {
	if s.mode == SearchOff {
		return nil
	}
	if text == "" {
		s.results = nil
		s.selectionActive = false
		s.lastQuery = ""
		return nil
	}
	_, err := s.search(ctx, s.mode.Column(), text)
	return err
}

// Search lists the commands matching term on the active mode's column, or on
// the command text when searching is off.
func (s *Session) Search(ctx context.Context, term string) ([]Command, error) {
	col := ColumnCommand
	if s.mode != SearchOff {
		col = s.mode.Column()
	}
	return s.search(ctx, col, term)
}

func (s *Session) search(ctx context.Context, col Column, term string) ([]Command, error) {
	cmds, err := s.store.Search(ctx, col, term)
	if err != nil {
		return nil, fmt.Errorf("search %s for %q: %w", col, term, err)
	}
	s.results = s.results[:0]
	for _, c := range cmds {
		s.Remember(c)
		s.results = append(s.results, c.ID)
	}
	s.historyMode = false
	s.selectionActive = false
	s.selectedResult = 0
	s.lastQuery = term
	s.lastColumn = col
	return cmds, nil
}

// Refresh re-runs the last store query, keeping the highlighted command
// selected when it is still part of the results.
func (s *Session) Refresh(ctx context.Context) error {
	if s.historyMode || s.lastQuery == "" {
		return nil
	}
	var selected int64
	wasActive := s.selectionActive
	if wasActive {
		selected = s.results[s.selectedResult]
	}
	if _, err := s.search(ctx, s.lastColumn, s.lastQuery); err != nil {
		return err
	}
	if wasActive {
		if i := slices.Index(s.results, selected); i >= 0 {
			s.selectionActive = true
			s.selectedResult = i
		}
	}
	return nil
}

// Move walks the selection through the results, wrapping at both ends.
// The first Up lands on the last result, the first Down on the first.
func (s *Session) Move(dir Direction) {
	n := len(s.results)
	if n == 0 {
		return
	}
	if !s.selectionActive {
		s.selectionActive = true
		if dir == Up {
			s.selectedResult = n - 1
		} else {
			s.selectedResult = 0
		}
		return
	}
	if dir == Up {
		s.selectedResult = (s.selectedResult - 1 + n) % n
	} else {
		s.selectedResult = (s.selectedResult + 1) % n
	}
}

// Selected returns the highlighted command
func (s *Session) Selected() (Command, bool) {
	if !s.selectionActive || s.selectedResult >= len(s.results) {
		return Command{}, false
	}
	return s.arena[s.results[s.selectedResult]], true
}

// Commit records the highlighted command in the history and leaves search
// mode. The result list is kept so the user can pick again.
func (s *Session) Commit() (Command, error) {
	cmd, ok := s.Selected()
	if !ok {
		return Command{}, ErrNoSelection
	}
	s.AddOrUpdate(cmd)
	if s.mode != SearchOff {
		// the list came from typing; a picked command ends that query
		s.lastQuery = ""
	}
	s.mode = SearchOff
	s.selectionActive = false
	s.historyMode = false
	return cmd, nil
}

// Reset clears the results and returns to the idle state
func (s *Session) Reset() {
	s.results = nil
	s.mode = SearchOff
	s.selectionActive = false
	s.historyMode = false
	s.lastQuery = ""
}

// Results returns the commands in the result list, in order
func (s *Session) Results() []Command {
	out := make([]Command, 0, len(s.results))
	for _, id := range s.results {
		out = append(out, s.arena[id])
	}
	return out
}

// Remember stores cmd in the arena so both lists see its latest state
func (s *Session) Remember(cmd Command) {
	s.arena[cmd.ID] = cmd
}
