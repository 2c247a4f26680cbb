package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/match3-server/internal/match3"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags([]string{"-seed", "9", "-width", "6", "-turns", "3", "-v"})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), opts.seed)
	assert.Equal(t, 6, opts.params.Width)
	assert.Equal(t, match3.DefaultHeight, opts.params.Height)
	assert.Equal(t, 3, opts.turns)
	assert.True(t, opts.verbose)

	_, err = parseFlags([]string{"-gems", "20"})
	assert.Error(t, err)
}

func TestSimulate(t *testing.T) {
	t.Parallel()

	opts := options{params: match3.GameParams{Width: 8, Height: 8, Level: 1}, turns: 5, verbose: true}
	game, err := match3.NewGame(&opts.params, rand.New(rand.NewPCG(3, 3)))
	require.NoError(t, err)

	var lines []string
	turns, err := simulate(game, opts, func(s string) { lines = append(lines, s) })
	require.NoError(t, err)
	assert.LessOrEqual(t, turns, 5)
	assert.Positive(t, turns)
	assert.Len(t, lines, 2*turns)
	assert.Equal(t, match3.GetLevelConfig(1).Moves-turns, game.MovesLeft)
	assert.Positive(t, game.Score)
}

func TestRender(t *testing.T) {
	t.Parallel()

	b, err := match3.ParseBoard("RAT", "ESR")
	require.NoError(t, err)
	b = b.WithCell(match3.Position{Row: 0, Col: 1}, func(c *match3.Cell) { c.Special = match3.RowClear })

	out := renderBoard(b)
	for _, s := range []string{"R", "A-", "T", "E", "S"} {
		assert.Contains(t, out, s)
	}
	assert.Equal(t, 3, strings.Count(out, "\n"))

	game, err := match3.NewGame(&match3.GameParams{}, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.Contains(t, renderSummary(game, 0), "in progress")
}
