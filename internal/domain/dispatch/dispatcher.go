package dispatch

import (
	"errors"
	"fmt"

	"github.com/corey/carbot/internal/domain/pattern"
	"github.com/corey/carbot/internal/ports"
)

// ActionError wraps a failure raised by an action. The table and dataset are
// untouched; the caller can report it and carry on with the next query.
type ActionError struct {
	Pattern  string
	Captures []string
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action for %q: %v", e.Pattern, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Dispatcher runs queries against a Table. It holds no mutable state, so
// Dispatch is idempotent and safe for concurrent use.
type Dispatcher struct {
	table   *Table
	scanner ports.TokenScanner
	needs   [][]string // literals required by each entry, parallel to table.entries
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithScanner enables the literal prefilter: entries whose literal words do
// not all occur in the query are skipped without running the matcher.
// Skipping only entries that cannot match keeps first-match-wins intact.
func WithScanner(factory ports.TokenScannerFactory) Option {
	return func(d *Dispatcher) {
		d.scanner = factory(d.table.Literals())
	}
}

// NewDispatcher creates a Dispatcher over table.
func NewDispatcher(table *Table, opts ...Option) *Dispatcher {
	d := &Dispatcher{table: table}
	d.needs = make([][]string, len(table.entries))
	for i, e := range table.entries {
		d.needs[i] = e.Pattern.Literals()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table returns the table the dispatcher routes over.
func (d *Dispatcher) Table() *Table { return d.table }

// Answer implements ports.Answerer.
func (d *Dispatcher) Answer(tokens []string) (ports.Reply, error) {
	return d.Dispatch(tokens)
}

// Dispatch finds the first entry matching tokens and runs its action.
//
//   - no entry matches: Answers is [NotUnderstood]
//   - the action returns ErrTerminate: Terminate is set, Answers is nil
//   - the action returns nothing: Answers is [NoAnswers]
//   - otherwise Answers is the action's result, order preserved
//
// Any other action error is returned as *ActionError.
func (d *Dispatcher) Dispatch(tokens []string) (ports.Reply, error) {
	var present map[string]bool
	if d.scanner != nil {
		present = d.scanner.Present(tokens)
	}

	for i, e := range d.table.entries {
		if present != nil && !containsAll(present, d.needs[i]) {
			continue
		}
		captures, ok := pattern.Match(e.Pattern, tokens)
		if !ok {
			continue
		}

		reply := ports.Reply{Pattern: e.Pattern.String(), Captures: captures}
		answers, err := e.Action(captures)
		if errors.Is(err, ErrTerminate) {
			reply.Terminate = true
			return reply, nil
		}
		if err != nil {
			return reply, &ActionError{Pattern: reply.Pattern, Captures: captures, Err: err}
		}
		if len(answers) == 0 {
			answers = []string{NoAnswers}
		}
		reply.Answers = answers
		return reply, nil
	}

	return ports.Reply{Answers: []string{NotUnderstood}}, nil
}

func containsAll(set map[string]bool, words []string) bool {
	for _, w := range words {
		if !set[w] {
			return false
		}
	}
	return true
}
