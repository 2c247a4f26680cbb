package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwap(t *testing.T) {
	t.Parallel()

	/* moving the ruby at 1:1 up completes RRRR on row 0 */
	b := mustParse(t, withRows(baseRows, map[int]string{
		0: "RTRRERTS",
		1: "ARRTSAER",
	})...)

	tests := []struct {
		name    string
		from    Position
		to      Position
		special CellID
	}{
		/* the special lands on the destination when it is in the run */
		{name: "anchored", from: Position{1, 1}, to: Position{0, 1}, special: 10},
		/* otherwise it takes the middle of the group */
		{name: "unanchored", from: Position{0, 1}, to: Position{1, 1}, special: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			sr, err := NewResolver(DefaultRules(), newRand()).Swap(b, test.from, test.to, turnContext())
			require.NoError(t, err)
			require.True(t, sr.Valid)
			assert.Equal(t, NoCombo, sr.Combo)

			first := sr.Passes[0]
			assert.Equal(t, int64(120), first.Score)
			require.Len(t, first.Created, 1)
			assert.Equal(t, test.special, first.Created[0].ID)
			assert.Equal(t, ColumnClear, first.Created[0].Special)

			for _, p := range []Position{test.from, test.to} {
				c, _ := sr.Swapped.At(p)
				assert.Equal(t, Swapping, c.Status)
			}
		})
	}
}

func TestSwapInvalid(t *testing.T) {
	t.Parallel()

	b := mustParse(t, baseRows...)
	sr, err := NewResolver(DefaultRules(), newRand()).Swap(b, Position{0, 0}, Position{0, 1}, turnContext())
	require.NoError(t, err)
	assert.False(t, sr.Valid)
	assert.Same(t, b, sr.Board)
	assert.Empty(t, sr.Passes)
	assert.Equal(t, int64(0), sr.Score)
}

func TestSwapErrors(t *testing.T) {
	t.Parallel()

	b := mustParse(t, baseRows...)
	resolver := NewResolver(DefaultRules(), newRand())

	_, err := resolver.Swap(b, Position{0, 0}, Position{1, 1}, turnContext())
	assert.ErrorIs(t, err, ErrNotAdjacent)
	_, err = resolver.Swap(b, Position{0, 0}, Position{0, 2}, turnContext())
	assert.ErrorIs(t, err, ErrNotAdjacent)
	_, err = resolver.Swap(b, Position{0, 0}, Position{-1, 0}, turnContext())
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = resolver.Swap(b, Position{7, 7}, Position{7, 8}, turnContext())
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSwapCombos(t *testing.T) {
	t.Parallel()

	t.Run("wildcard pair clears the board", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, withRows(baseRows, map[int]string{0: "PPSAERTS"})...)
		sr, err := NewResolver(DefaultRules(), newRand()).Swap(b, Position{0, 0}, Position{0, 1}, turnContext())
		require.NoError(t, err)
		require.True(t, sr.Valid)
		assert.Equal(t, ComboDoubleWildcard, sr.Combo)
		first := sr.Passes[0]
		assert.Len(t, first.Cleared, 64)
		assert.Len(t, first.Drops, 64)
		assert.Equal(t, int64(640), first.Score)
	})

	t.Run("wildcard and color", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, withRows(baseRows, map[int]string{0: "PTSAERTS"})...)
		sr, err := NewResolver(DefaultRules(), newRand()).Swap(b, Position{0, 0}, Position{0, 1}, turnContext())
		require.NoError(t, err)
		require.True(t, sr.Valid)
		assert.Equal(t, ComboWildcardColor, sr.Combo)
		first := sr.Passes[0]
		/* every topaz plus the wildcard itself */
		assert.Len(t, first.Cleared, 14)
		assert.Empty(t, first.Detonated)
		assert.Equal(t, int64(140), first.Score)
	})

	t.Run("two line specials", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, baseRows...)
		b = withSpecial(b, Position{3, 3}, RowClear)
		b = withSpecial(b, Position{3, 4}, ColumnClear)
		sr, err := NewResolver(DefaultRules(), newRand()).Swap(b, Position{3, 4}, Position{3, 3}, turnContext())
		require.NoError(t, err)
		require.True(t, sr.Valid)
		assert.Equal(t, ComboLines, sr.Combo)
		first := sr.Passes[0]
		assert.Len(t, first.Cleared, 15)
		/* both specials are spent by the swap itself */
		assert.Empty(t, first.Detonated)
	})
}
