// Package dispatch routes a tokenized query to the first pattern that matches
// it and runs the bound action.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/corey/carbot/internal/domain/pattern"
)

// Sentinel answers returned instead of an answer list.
const (
	NoAnswers     = "No answers"
	NotUnderstood = "I don't understand"
)

// ErrTerminate is returned by an action to ask the query loop to stop.
// The Dispatcher turns it into Reply.Terminate; it never escapes Dispatch.
var ErrTerminate = errors.New("terminate")

// Action maps wildcard captures to answers. Captures are positional, in the
// order their wildcards appear in the pattern.
type Action func(captures []string) ([]string, error)

// Bye is the exit action.
func Bye(_ []string) ([]string, error) {
	return nil, ErrTerminate
}

// Rule is the unvalidated form of a table entry: pattern text plus action.
type Rule struct {
	Pattern string
	Action  Action
}

// Entry is one validated (pattern, action) pair.
type Entry struct {
	Pattern pattern.Pattern
	Action  Action
}

// Table is the ordered pattern registry. Earlier entries take precedence.
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	entries []Entry
}

// NewTable parses every rule in order. The first malformed pattern aborts
// construction with an error wrapping *pattern.InvalidPatternError.
func NewTable(rules []Rule) (*Table, error) {
	entries := make([]Entry, 0, len(rules))
	for i, r := range rules {
		p, err := pattern.Parse(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if r.Action == nil {
			return nil, fmt.Errorf("rule %d (%s): nil action", i, p)
		}
		entries = append(entries, Entry{Pattern: p, Action: r.Action})
	}
	return &Table{entries: entries}, nil
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in precedence order.
func (t *Table) Entries() []Entry {
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Patterns returns the pattern texts in precedence order.
func (t *Table) Patterns() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Pattern.String()
	}
	return out
}

// Literals returns every distinct literal word used by the table.
func (t *Table) Literals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range t.entries {
		for _, w := range e.Pattern.Literals() {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}
