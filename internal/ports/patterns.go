package ports

// TokenScanner reports which keywords of a fixed set occur as whole tokens in
// a query, using multi-pattern matching (Aho-Corasick). A single pass over the
// query finds every keyword simultaneously regardless of the set's size.
//
// The keyword set is fixed at construction; the pattern table never changes
// at runtime, so there is no rebuild.
type TokenScanner interface {
	// Present returns the set of keywords that appear as whole tokens in
	// tokens. Returns an empty (non-nil) map when none do.
	Present(tokens []string) map[string]bool
}

// TokenScannerFactory builds a TokenScanner for a keyword set.
type TokenScannerFactory func(keywords []string) TokenScanner
