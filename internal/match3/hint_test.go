package match3

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindValidSwaps(t *testing.T) {
	t.Parallel()

	b := mustParse(t, withRows(baseRows, map[int]string{0: "RRSRERTS"})...)
	moves := FindValidSwaps(b)
	assert.Contains(t, moves, Move{From: Position{0, 2}, To: Position{1, 2}})
	for _, m := range moves {
		assert.True(t, m.From.Adjacent(m.To))
		assert.True(t, validSwap(b, m.From, m.To))
	}
}

func TestFindValidSwapsWildcard(t *testing.T) {
	t.Parallel()

	/* a wildcard can always be swapped with a neighbour */
	b := mustParse(t,
		"RAT",
		"EPM",
		"DOS",
	)
	moves := FindValidSwaps(b)
	assert.ElementsMatch(t, []Move{
		{From: Position{0, 1}, To: Position{1, 1}},
		{From: Position{1, 0}, To: Position{1, 1}},
		{From: Position{1, 1}, To: Position{1, 2}},
		{From: Position{1, 1}, To: Position{2, 1}},
	}, moves)
}

func TestDeadBoard(t *testing.T) {
	t.Parallel()

	b := mustParse(t,
		"RAT",
		"ESM",
		"DOR",
	)
	assert.Empty(t, FindValidSwaps(b))
	assert.False(t, HasValidMove(b))
}

func TestShuffle(t *testing.T) {
	t.Parallel()

	b := mustParse(t, baseRows...)
	out := Shuffle(newRand(), b)

	assert.False(t, HasMatch(out))
	assert.True(t, HasValidMove(out))
	assert.NotEqual(t, b.String(), out.String())

	before, after := cellIDs(b.Cells()), cellIDs(out.Cells())
	slices.Sort(after)
	assert.Equal(t, before, after)

	for _, c := range out.Cells() {
		orig, _ := b.Cell(c.ID)
		assert.Equal(t, orig.Type, c.Type, "token %d changed type", c.ID)
	}
}
