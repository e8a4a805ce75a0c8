package pattern

import "strings"

// Match aligns p against input and returns the wildcard captures in
// left-to-right order. ok is false when no alignment exists.
//
// Literals compare by exact equality; normalizing case and punctuation is the
// caller's job. A multi-token wildcard takes the shortest prefix that lets the
// rest of the pattern match, so results are deterministic. The search is
// exponential in the number of multi-token wildcards; patterns are short and
// carry at most one in practice.
func Match(p Pattern, input []string) (captures []string, ok bool) {
	captures = make([]string, 0, p.Wildcards())
	return align(p.tokens, input, captures)
}

// align matches pat against in, appending captures to acc.
// acc is never shared between alternative branches: a failed branch returns
// ok=false and its caller retries from its own slice header.
func align(pat []Token, in []string, acc []string) ([]string, bool) {
	if len(pat) == 0 {
		return acc, len(in) == 0
	}

	head, rest := pat[0], pat[1:]
	switch head.Kind {
	case Literal:
		if len(in) == 0 || in[0] != head.Word {
			return nil, false
		}
		return align(rest, in[1:], acc)

	case Single:
		if len(in) == 0 {
			return nil, false
		}
		return align(rest, in[1:], append(acc, in[0]))

	case Multi:
		for n := 0; n <= len(in); n++ {
			// Full slice expression forces a copy on append, so branches
			// cannot overwrite each other's captures.
			branch := append(acc[:len(acc):len(acc)], strings.Join(in[:n], " "))
			if out, ok := align(rest, in[n:], branch); ok {
				return out, true
			}
		}
		return nil, false
	}

	return nil, false
}
