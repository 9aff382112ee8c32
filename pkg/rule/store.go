package rule

import (
	"sort"
	"sync"
)

// DefaultHistoryLimit bounds the execution history ring.
const DefaultHistoryLimit = 1000

// Store owns all rules and the execution history. Rules are held by
// value and cloned at the boundary, so updates are replace-on-write and
// callers can never corrupt stored state. All methods are safe for
// concurrent use.
type Store struct {
	rules        map[string]Rule
	history      []ExecutionRecord
	historyLimit int
	mu           sync.RWMutex
}

// NewStore creates an empty store with the default history limit.
func NewStore() *Store {
	return NewStoreWithHistoryLimit(DefaultHistoryLimit)
}

// NewStoreWithHistoryLimit creates an empty store with a custom history
// cap. Non-positive limits fall back to the default.
func NewStoreWithHistoryLimit(limit int) *Store {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Store{
		rules:        make(map[string]Rule),
		historyLimit: limit,
	}
}

// Put inserts or replaces a rule. Collisions are last-write-wins.
func (s *Store) Put(r Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules[r.ID] = r.Clone()
}

// Get returns a copy of the rule with the given id.
func (s *Store) Get(id string) (Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rules[id]
	if !ok {
		return Rule{}, false
	}
	return r.Clone(), true
}

// Delete removes a rule. It is idempotent: deleting an absent id
// returns false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[id]; !ok {
		return false
	}
	delete(s.rules, id)
	return true
}

// List returns copies of all rules, ordered by creation time and then
// id for a stable result.
func (s *Store) List() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// Count returns the number of stored rules.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rules)
}

// Record appends an execution record, evicting the oldest entries once
// the history limit is reached.
func (s *Store) Record(rec ExecutionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, rec)
	if len(s.history) > s.historyLimit {
		overflow := len(s.history) - s.historyLimit
		s.history = append(s.history[:0:0], s.history[overflow:]...)
	}
}

// History returns a copy of the execution history, oldest first.
func (s *Store) History() []ExecutionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ExecutionRecord, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryFor returns the history entries for a single rule, oldest
// first.
func (s *Store) HistoryFor(ruleID string) []ExecutionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ExecutionRecord
	for _, rec := range s.history {
		if rec.RuleID == ruleID {
			out = append(out, rec)
		}
	}
	return out
}
