// Package pattern implements the phrase patterns queries are matched against.
//
// A pattern is a typed token sequence: literal words, single-token wildcards
// and multi-token wildcards. In text form the wildcards are written as the
// reserved markers "_" (exactly one token) and "%" (zero or more tokens):
//
//	who directed %
//	what cars were made between _ and _
package pattern

import (
	"fmt"
	"strings"
)

// Reserved wildcard markers in pattern text.
const (
	SingleMarker = "_"
	MultiMarker  = "%"
)

// Kind discriminates pattern tokens.
type Kind int

const (
	Literal Kind = iota + 1
	Single
	Multi
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is one element of a Pattern. Word is set only for literals.
type Token struct {
	Kind Kind
	Word string
}

// Lit returns a literal token.
func Lit(word string) Token { return Token{Kind: Literal, Word: word} }

// One returns a single-token wildcard.
func One() Token { return Token{Kind: Single} }

// Any returns a multi-token wildcard.
func Any() Token { return Token{Kind: Multi} }

// IsWildcard reports whether t captures input.
func (t Token) IsWildcard() bool {
	return t.Kind == Single || t.Kind == Multi
}

func (t Token) String() string {
	switch t.Kind {
	case Single:
		return SingleMarker
	case Multi:
		return MultiMarker
	default:
		return t.Word
	}
}

// Pattern is a validated token sequence. Build one with Parse or New.
type Pattern struct {
	tokens []Token
}

// InvalidPatternError reports a pattern rejected at construction time.
type InvalidPatternError struct {
	Pattern  string
	Position int // token index of the offending token, -1 for whole-pattern problems
	Reason   string
}

func (e *InvalidPatternError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
	}
	return fmt.Sprintf("invalid pattern %q: token %d: %s", e.Pattern, e.Position, e.Reason)
}

// Parse splits text on whitespace and builds a Pattern. "_" and "%" become
// wildcards; every other word is a literal.
func Parse(text string) (Pattern, error) {
	words := strings.Fields(text)
	tokens := make([]Token, len(words))
	for i, w := range words {
		switch w {
		case SingleMarker:
			tokens[i] = One()
		case MultiMarker:
			tokens[i] = Any()
		default:
			tokens[i] = Lit(w)
		}
	}
	return New(tokens...)
}

// MustParse is Parse for patterns known at compile time. It panics on error.
func MustParse(text string) Pattern {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// New validates tokens and returns the Pattern they form.
// Rejected: an empty sequence, empty literals, unknown kinds, and two
// wildcards next to each other (their split would be ambiguous).
func New(tokens ...Token) (Pattern, error) {
	text := join(tokens)
	if len(tokens) == 0 {
		return Pattern{}, &InvalidPatternError{Pattern: text, Position: -1, Reason: "empty pattern"}
	}
	for i, t := range tokens {
		switch t.Kind {
		case Literal:
			if t.Word == "" || strings.ContainsAny(t.Word, " \t\n") {
				return Pattern{}, &InvalidPatternError{Pattern: text, Position: i, Reason: "literal must be a single non-empty word"}
			}
		case Single, Multi:
			if i > 0 && tokens[i-1].IsWildcard() {
				return Pattern{}, &InvalidPatternError{Pattern: text, Position: i, Reason: "adjacent wildcards"}
			}
		default:
			return Pattern{}, &InvalidPatternError{Pattern: text, Position: i, Reason: "unknown token " + t.Kind.String()}
		}
	}
	cp := make([]Token, len(tokens))
	copy(cp, tokens)
	return Pattern{tokens: cp}, nil
}

// Tokens returns a copy of the pattern's tokens.
func (p Pattern) Tokens() []Token {
	cp := make([]Token, len(p.tokens))
	copy(cp, p.tokens)
	return cp
}

// Len is the number of tokens in the pattern.
func (p Pattern) Len() int { return len(p.tokens) }

// Literals returns the distinct literal words of the pattern in order of
// first appearance.
func (p Pattern) Literals() []string {
	seen := make(map[string]bool, len(p.tokens))
	var out []string
	for _, t := range p.tokens {
		if t.Kind == Literal && !seen[t.Word] {
			seen[t.Word] = true
			out = append(out, t.Word)
		}
	}
	return out
}

// Wildcards counts the capturing tokens, i.e. the length of every successful
// Match result.
func (p Pattern) Wildcards() int {
	n := 0
	for _, t := range p.tokens {
		if t.IsWildcard() {
			n++
		}
	}
	return n
}

// String renders the pattern back to its text form.
func (p Pattern) String() string { return join(p.tokens) }

func join(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
