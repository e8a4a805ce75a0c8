// Package ahocorasick provides multi-keyword token scanning using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library for O(n + m + z) matching.
package ahocorasick

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/carbot/internal/ports"
)

// TokenScanner implements ports.TokenScanner. Keywords are compiled padded
// with one space on each side and the query is scanned as " tok1 tok2 ... ",
// so a hit means the keyword occurs as a whole token. Overlapping iteration
// is required: adjacent tokens share the space between them.
type TokenScanner struct {
	automaton aho.AhoCorasick
	keywords  []string
}

// NewTokenScanner compiles the automaton for keywords. Empty and duplicate
// keywords are dropped; keywords containing whitespace can never match a
// single token and are dropped too.
func NewTokenScanner(keywords []string) *TokenScanner {
	seen := make(map[string]bool, len(keywords))
	kept := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" || seen[kw] || strings.ContainsAny(kw, " \t\n") {
			continue
		}
		seen[kw] = true
		kept = append(kept, kw)
	}

	s := &TokenScanner{keywords: kept}
	if len(kept) == 0 {
		return s
	}

	padded := make([]string, len(kept))
	for i, kw := range kept {
		padded[i] = " " + kw + " "
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	s.automaton = builder.Build(padded)
	return s
}

// Factory adapts NewTokenScanner to ports.TokenScannerFactory.
func Factory(keywords []string) ports.TokenScanner {
	return NewTokenScanner(keywords)
}

// Present returns the keywords occurring as whole tokens.
func (s *TokenScanner) Present(tokens []string) map[string]bool {
	found := make(map[string]bool)
	if len(s.keywords) == 0 || len(tokens) == 0 {
		return found
	}

	haystack := []byte(" " + strings.Join(tokens, " ") + " ")
	iter := s.automaton.IterOverlappingByte(haystack)
	for next := iter.Next(); next != nil; next = iter.Next() {
		found[s.keywords[next.Pattern()]] = true
		if len(found) == len(s.keywords) {
			break
		}
	}
	return found
}

// KeywordCount returns the number of keywords in the automaton.
func (s *TokenScanner) KeywordCount() int {
	return len(s.keywords)
}
