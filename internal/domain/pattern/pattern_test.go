package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Pattern construction: text parsing, typed tokens, invalid pattern rejection
// =============================================================================

func TestParse_Kinds(t *testing.T) {
	p, err := Parse("what cars were made between _ and _")
	require.NoError(t, err)

	toks := p.Tokens()
	require.Len(t, toks, 8)
	assert.Equal(t, Lit("what"), toks[0])
	assert.Equal(t, One(), toks[5])
	assert.Equal(t, Lit("and"), toks[6])
	assert.Equal(t, One(), toks[7])
	assert.Equal(t, 2, p.Wildcards())
	assert.Equal(t, "what cars were made between _ and _", p.String())
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	p, err := Parse("  who   directed\t% ")
	require.NoError(t, err)
	assert.Equal(t, "who directed %", p.String())
	assert.Equal(t, []Token{Lit("who"), Lit("directed"), Any()}, p.Tokens())
}

func TestParse_RejectsAdjacentWildcards(t *testing.T) {
	for _, text := range []string{"who % _", "_ _", "% %", "in _ % made"} {
		_, err := Parse(text)
		require.Error(t, err, text)

		var ipe *InvalidPatternError
		require.True(t, errors.As(err, &ipe), text)
		assert.Equal(t, "adjacent wildcards", ipe.Reason)
	}

	_, err := Parse("who % and _")
	assert.NoError(t, err, "wildcards separated by a literal are fine")
}

func TestParse_RejectsEmpty(t *testing.T) {
	_, err := Parse("   ")
	var ipe *InvalidPatternError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, -1, ipe.Position)
	assert.Contains(t, err.Error(), "empty pattern")
}

func TestNew_RejectsBadLiterals(t *testing.T) {
	_, err := New(Lit("who"), Lit(""))
	var ipe *InvalidPatternError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, 1, ipe.Position)

	_, err = New(Lit("two words"))
	require.ErrorAs(t, err, &ipe)

	_, err = New(Token{Kind: Kind(42)})
	require.ErrorAs(t, err, &ipe)
	assert.Contains(t, ipe.Reason, "kind(42)")
}

func TestNew_CopiesTokens(t *testing.T) {
	toks := []Token{Lit("bye")}
	p, err := New(toks...)
	require.NoError(t, err)

	toks[0] = Lit("hello")
	assert.Equal(t, "bye", p.String())

	out := p.Tokens()
	out[0] = Lit("mutated")
	assert.Equal(t, "bye", p.String())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("_ %") })
	assert.NotPanics(t, func() { MustParse("bye") })
}

func TestLiterals_DistinctInOrder(t *testing.T) {
	p := MustParse("what was the most sold car in the country ranked _")
	assert.Equal(t,
		[]string{"what", "was", "the", "most", "sold", "car", "in", "country", "ranked"},
		p.Literals())

	assert.Empty(t, MustParse("%").Literals())
}
