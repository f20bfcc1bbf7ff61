// Package dashboard holds the stock dashboard's application state and the
// view models for the stock list, the details panel and the time-frame bar.
package dashboard

import (
	"sync"

	"stockdash/pkg/stocksapi"
)

// Selection is the committed (symbol, time frame) pair.
type Selection struct {
	Symbol    string
	TimeFrame TimeFrame
}

// IsZero reports whether nothing has been committed yet.
func (s Selection) IsZero() bool { return s.Symbol == "" && s.TimeFrame == "" }

// State is the application state: the three documents, the selection and
// the request generation. Documents are immutable once committed; a commit
// replaces all three together.
type State struct {
	mu        sync.RWMutex
	docs      stocksapi.Documents
	sel       Selection
	gen       uint64 // latest issued request
	committed uint64 // generation of the adopted documents
}

// NewState creates an empty state.
func NewState() *State {
	return &State{}
}

// Begin issues the generation for a new fetch-and-render cycle. Responses
// for earlier generations become stale.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Latest returns the most recently issued generation.
func (s *State) Latest() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// IsCurrent reports whether gen is the latest issued generation.
func (s *State) IsCurrent(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.gen
}

// Commit adopts docs and sel together if gen is still current. It returns
// false, leaving the state untouched, for a stale generation.
func (s *State) Commit(gen uint64, docs stocksapi.Documents, sel Selection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.docs = docs
	s.sel = sel
	s.committed = gen
	return true
}

// Snapshot returns the committed documents and selection.
func (s *State) Snapshot() (stocksapi.Documents, Selection) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs, s.sel
}

// Selection returns the committed selection.
func (s *State) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}

// Committed returns the generation of the adopted documents, zero before
// the first successful cycle.
func (s *State) Committed() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

// ResolveSymbol picks the symbol to show after a load: want if the stats
// document has it, otherwise the first symbol in document order.
func ResolveSymbol(want string, stats *stocksapi.StatsDoc) (string, bool) {
	if want != "" {
		if _, ok := stats.Get(want); ok {
			return want, true
		}
	}
	syms := stats.Symbols()
	if len(syms) == 0 {
		return "", false
	}
	return syms[0], true
}
