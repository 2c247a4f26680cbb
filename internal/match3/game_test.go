package match3

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, params GameParams) *GameState {
	t.Helper()
	g, err := NewGame(&params, newRand())
	require.NoError(t, err)
	return g
}

// invalidMove finds an adjacent exchange that neither matches nor combines.
func invalidMove(t *testing.T, b *Board) Move {
	t.Helper()
	valid := FindValidSwaps(b)
	for _, c := range b.Cells() {
		m := Move{From: c.Pos(), To: Position{Row: c.Row, Col: c.Col + 1}}
		if b.InBounds(m.To) && !slices.Contains(valid, m) {
			return m
		}
	}
	t.Fatal("every swap is valid")
	return Move{}
}

func TestNewGame(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{})
	assert.Equal(t, 8, g.Board.Width())
	assert.Equal(t, 8, g.Board.Height())
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, GetLevelConfig(1), g.Config)
	assert.Equal(t, 20, g.MovesLeft)
	assert.Len(t, g.Allowed, 5)
	assert.Equal(t, NewInventory(), g.Inventory)
	assert.False(t, g.Over())
	assert.False(t, HasMatch(g.Board))
	assert.True(t, HasValidMove(g.Board))

	again := newTestGame(t, GameParams{})
	assert.Equal(t, g.Board.String(), again.Board.String())
}

func TestNewGameParams(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{Width: 6, Height: 10, Level: 5})
	assert.Equal(t, 6, g.Board.Width())
	assert.Equal(t, 10, g.Board.Height())
	assert.Equal(t, 5*time.Minute, g.Config.TimeLimit)
	assert.Len(t, g.Allowed, 8)

	g = newTestGame(t, GameParams{GemTypes: 3})
	assert.Len(t, g.Allowed, 3)

	_, err := NewGameWithRules(&GameParams{}, Rules{}, newRand())
	var rulesErr *ConfigError
	assert.ErrorAs(t, err, &rulesErr)

	for _, bad := range []GameParams{
		{Width: 2},
		{Height: 33},
		{Level: -1},
		{GemTypes: 9},
	} {
		_, err := NewGame(&bad, newRand())
		var ce *ConfigError
		assert.ErrorAs(t, err, &ce, "%+v", bad)
	}
}

func TestGameSwap(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{})
	g.Config.TargetScore = 1 << 40

	bad := invalidMove(t, g.Board)
	board := g.Board
	sr, err := g.Swap(bad.From, bad.To)
	require.NoError(t, err)
	assert.False(t, sr.Valid)
	assert.Same(t, board, g.Board)
	assert.Equal(t, 20, g.MovesLeft)

	move, ok := g.Hint()
	require.True(t, ok)
	sr, err = g.Swap(move.From, move.To)
	require.NoError(t, err)
	require.True(t, sr.Valid)
	assert.Equal(t, 19, g.MovesLeft)
	assert.Positive(t, sr.Score)
	assert.Equal(t, sr.Score, g.Score)
	assert.Equal(t, sr.Score, g.TotalScore)
	assert.Equal(t, sr.Combo, ComboKind(0))
	assert.Equal(t, len(sr.Passes), g.Combo)
	assert.True(t, HasValidMove(g.Board))

	_, err = g.Swap(Position{0, 0}, Position{5, 5})
	assert.ErrorIs(t, err, ErrNotAdjacent)
	assert.Equal(t, 19, g.MovesLeft)
}

func TestGameComboCarriesAcrossActions(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{})
	g.Config.TargetScore = 1 << 40

	move, ok := g.Hint()
	require.True(t, ok)
	first, err := g.Swap(move.From, move.To)
	require.NoError(t, err)
	require.True(t, first.Valid)
	require.Positive(t, first.Result.Combo)
	assert.Equal(t, first.Result.Combo, g.Combo)

	move, ok = g.Hint()
	require.True(t, ok)
	second, err := g.Swap(move.From, move.To)
	require.NoError(t, err)
	require.True(t, second.Valid)
	assert.Equal(t, first.Result.Combo, second.Passes[0].Combo)
	assert.Equal(t, first.Result.Combo+len(second.Passes), second.Result.Combo)
	assert.Equal(t, second.Result.Combo, g.Combo)

	res, err := g.UseTool(ToolShuffle, Position{})
	require.NoError(t, err)
	require.Empty(t, res.Passes)
	assert.Equal(t, 0, g.Combo)
}

func TestGameTools(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{})
	g.Config.TargetScore = 1 << 40

	_, err := g.UseTool(ToolBomb, Position{-1, 3})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, DefaultBombs, g.Inventory.Bombs)

	for i := range DefaultBombs {
		res, err := g.UseTool(ToolBomb, Position{3, 3})
		require.NoError(t, err)
		assert.Len(t, res.Passes[0].Cleared, 9)
		assert.Equal(t, DefaultBombs-i-1, g.Inventory.Bombs)
	}
	_, err = g.UseTool(ToolBomb, Position{3, 3})
	assert.ErrorIs(t, err, ErrToolUnavailable)

	before := g.Board
	res, err := g.UseTool(ToolShuffle, Position{})
	require.NoError(t, err)
	assert.Empty(t, res.Passes)
	assert.NotEqual(t, before.String(), g.Board.String())
	assert.Equal(t, DefaultShuffles-1, g.Inventory.Shuffles)

	_, err = g.UseTool(Tool(9), Position{})
	assert.ErrorIs(t, err, ErrUnknownTool)

	/* tools never spend moves */
	assert.Equal(t, 20, g.MovesLeft)
}

func TestGameWinAndNextLevel(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{})
	assert.ErrorIs(t, g.NextLevel(), ErrLevelNotWon)

	g.Config.TargetScore = 1
	move, _ := g.Hint()
	_, err := g.Swap(move.From, move.To)
	require.NoError(t, err)
	assert.True(t, g.Won)
	assert.False(t, g.Lost)

	_, err = g.Swap(move.From, move.To)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.UseTool(ToolBomb, Position{1, 1})
	assert.ErrorIs(t, err, ErrGameOver)

	total := g.TotalScore
	require.NoError(t, g.NextLevel())
	assert.Equal(t, 2, g.Level)
	assert.Equal(t, GetLevelConfig(2), g.Config)
	assert.Equal(t, 22, g.MovesLeft)
	assert.Len(t, g.Allowed, 6)
	assert.Equal(t, int64(0), g.Score)
	assert.Equal(t, total, g.TotalScore)
	assert.Equal(t, NewInventory(), g.Inventory)
	assert.False(t, g.Over())
}

func TestGameOutOfMoves(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{})
	g.Config.TargetScore = 1 << 40
	g.MovesLeft = 1

	move, _ := g.Hint()
	_, err := g.Swap(move.From, move.To)
	require.NoError(t, err)
	assert.True(t, g.Lost)
	assert.Equal(t, 0, g.MovesLeft)

	_, err = g.Swap(move.From, move.To)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestGameExpired(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g := newTestGame(t, GameParams{})
	assert.False(t, g.Expired(t0.Add(time.Hour)), "untimed levels never expire")

	g.Config.TimeLimit = time.Minute
	g.StartedAt = t0
	assert.False(t, g.Expired(t0.Add(30*time.Second)))
	assert.Equal(t, 30*time.Second, g.Remaining(t0.Add(30*time.Second)))

	g.clock = func() time.Time { return t0.Add(2 * time.Minute) }
	move, _ := g.Hint()
	_, err := g.Swap(move.From, move.To)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.True(t, g.TimedOut)
	assert.True(t, g.Lost)
	assert.Equal(t, time.Duration(0), g.Remaining(t0.Add(2*time.Minute)))
}

func TestGameReshufflesDeadBoard(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, GameParams{})
	dead := mustParse(t,
		"RAT",
		"ESM",
		"DOR",
	)
	g.apply(Result{Board: dead})
	assert.Equal(t, 1, g.AutoShuffles)
	assert.ElementsMatch(t, cellIDs(dead.Cells()), cellIDs(g.Board.Cells()))
}
