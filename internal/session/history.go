package session

import "slices"

// ledger is the ordered list of committed command ids, without duplicates
type ledger struct {
	ids      []int64
	selected int
}

// record moves the cursor to id, appending it when it is new
func (l *ledger) record(id int64) {
	if i := slices.Index(l.ids, id); i >= 0 {
		l.selected = i
		return
	}
	l.ids = append(l.ids, id)
	l.selected = len(l.ids) - 1
}

// AddOrUpdate records cmd in the history. A command already present keeps its
// position and becomes current; its stored state is replaced by cmd.
func (s *Session) AddOrUpdate(cmd Command) {
	s.Remember(cmd)
	s.history.record(cmd.ID)
}

// Current returns the current history entry
func (s *Session) Current() (Command, error) {
	if len(s.history.ids) == 0 {
		return Command{}, ErrEmptyHistory
	}
	return s.arena[s.history.ids[s.history.selected]], nil
}

// History returns the committed commands, oldest first
func (s *Session) History() []Command {
	out := make([]Command, 0, len(s.history.ids))
	for _, id := range s.history.ids {
		out = append(out, s.arena[id])
	}
	return out
}

// ShowHistory replaces the result list with the history
func (s *Session) ShowHistory() error {
	if len(s.history.ids) == 0 {
		return ErrEmptyHistory
	}
	s.results = slices.Clone(s.history.ids)
	s.historyMode = true
	s.mode = SearchOff
	s.selectionActive = false
	s.selectedResult = 0
	s.lastQuery = ""
	return nil
}
