// Package query turns raw user input into the token sequence the dispatcher
// matches against.
package query

import "strings"

// Tokenize normalizes a raw question:
//  1. Remove every "?"
//  2. Lowercase
//  3. Split on whitespace
//
// Other punctuation is kept: dataset values such as "cuba gooding jr." or
// "f-150" contain it. Returns nil for blank input.
func Tokenize(input string) []string {
	cleaned := strings.ReplaceAll(input, "?", "")
	tokens := strings.Fields(strings.ToLower(cleaned))
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
