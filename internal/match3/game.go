package match3

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	MinBoardSide = 3
	MaxBoardSide = 32
)

type GameParams struct {
	Width    int `json:"width" schema:"width"`
	Height   int `json:"height" schema:"height"`
	Level    int `json:"level" schema:"level"`
	GemTypes int `json:"gem_types,omitempty" schema:"gems"` // level-1 pool size, 0 for the default
}

// withDefaults fills zero dimensions and level with the standard values.
func (p GameParams) withDefaults() GameParams {
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.Level == 0 {
		p.Level = 1
	}
	return p
}

func (p GameParams) Validate() error {
	p = p.withDefaults()
	if p.Width < MinBoardSide || p.Width > MaxBoardSide {
		return configErrorf("width", "%d is outside %d..%d", p.Width, MinBoardSide, MaxBoardSide)
	}
	if p.Height < MinBoardSide || p.Height > MaxBoardSide {
		return configErrorf("height", "%d is outside %d..%d", p.Height, MinBoardSide, MaxBoardSide)
	}
	if p.Level < 1 {
		return configErrorf("level", "must be positive, got %d", p.Level)
	}
	if p.GemTypes != 0 {
		return ValidateGemTypes(p.GemTypes)
	}
	return nil
}

/*
GameState is one player's session: the current level, its board and the
counters that decide the outcome. Score is per level; TotalScore runs across
levels. GameState is not safe for concurrent use.
*/
type GameState struct {
	GameParams
	Config       LevelConfig `json:"config"`
	Allowed      []TokenType `json:"allowed"`
	Board        *Board      `json:"-"`
	Score        int64       `json:"score"`
	TotalScore   int64       `json:"total_score"`
	MovesLeft    int         `json:"moves_left"`
	Combo        int         `json:"combo"`
	Inventory    Inventory   `json:"inventory"`
	Won          bool        `json:"won"`
	Lost         bool        `json:"lost"`
	TimedOut     bool        `json:"timed_out"`
	AutoShuffles int         `json:"auto_shuffles"`
	StartedAt    time.Time   `json:"started_at"`

	resolver *Resolver
	clock    func() time.Time
}

// recoverAssertion turns an AssertionError panic raised during resolution
// into an ordinary error return.
func recoverAssertion(err *error) {
	if r := recover(); r != nil {
		var ae AssertionError
		if e, ok := r.(error); ok && errors.As(e, &ae) {
			*err = ae
			return
		}
		panic(r)
	}
}

func NewGame(params *GameParams, r *rand.Rand) (state *GameState, err error) {
	return NewGameWithRules(params, DefaultRules(), r)
}

func NewGameWithRules(params *GameParams, rules Rules, r *rand.Rand) (state *GameState, err error) {
	defer recoverAssertion(&err)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	state = &GameState{
		GameParams: params.withDefaults(),
		resolver:   NewResolver(rules, r),
		clock:      time.Now,
	}
	if err := state.startLevel(state.Level); err != nil {
		return nil, err
	}
	return state, nil
}

// Resolver exposes the session's resolver, e.g. to enable frame recording.
func (g *GameState) Resolver() *Resolver {
	return g.resolver
}

func (g *GameState) startLevel(level int) error {
	allowed, err := GetGemTypesForLevel(level, g.GemTypes)
	if err != nil {
		return err
	}
	board, err := CreateInitialBoard(g.resolver.rnd, g.Width, g.Height, allowed)
	if err != nil {
		return err
	}
	if !HasValidMove(board) {
		board = Shuffle(g.resolver.rnd, board)
	}

	g.Level = level
	g.Config = GetLevelConfig(level)
	g.Allowed = allowed
	g.Board = board
	g.Score = 0
	g.MovesLeft = g.Config.Moves
	g.Combo = 0
	g.Inventory = NewInventory()
	g.Won, g.Lost, g.TimedOut = false, false, false
	g.StartedAt = g.clock()

	Log.WithFields(logrus.Fields{
		"level":  level,
		"target": g.Config.TargetScore,
		"moves":  g.Config.Moves,
		"gems":   len(allowed),
	}).Debug("level started")
	return nil
}

func (g *GameState) Over() bool {
	return g.Won || g.Lost
}

// The combo chain carries across player actions until a turn clears nothing.
func (g *GameState) turnContext() TurnContext {
	return TurnContext{Level: g.Level, Combo: g.Combo, Allowed: g.Allowed}
}

func (g *GameState) checkPlayable() error {
	if g.Expired(g.clock()) || g.Over() {
		return ErrGameOver
	}
	return nil
}

// Swap plays one move. Only a valid swap consumes a move.
func (g *GameState) Swap(from, to Position) (sr SwapResult, err error) {
	defer recoverAssertion(&err)

	if err := g.checkPlayable(); err != nil {
		return SwapResult{}, err
	}
	sr, err = g.resolver.Swap(g.Board, from, to, g.turnContext())
	if err != nil || !sr.Valid {
		return sr, err
	}
	g.MovesLeft--
	g.apply(sr.Result)
	return sr, nil
}

// UseTool activates a consumable. Tools never consume moves; pos is ignored
// by the shuffle.
func (g *GameState) UseTool(tool Tool, pos Position) (res Result, err error) {
	defer recoverAssertion(&err)

	if err := g.checkPlayable(); err != nil {
		return Result{}, err
	}

	switch tool {
	case ToolBomb:
		if !g.Board.InBounds(pos) {
			return Result{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
		}
		if err := g.Inventory.Use(tool); err != nil {
			return Result{}, err
		}
		res, err = g.resolver.Bomb(g.Board, pos, g.turnContext())
	case ToolShuffle:
		if err := g.Inventory.Use(tool); err != nil {
			return Result{}, err
		}
		shuffled := Shuffle(g.resolver.rnd, g.Board)
		res, err = g.resolver.Resolve(shuffled, g.turnContext(), Trigger{})
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownTool, tool)
	}
	if err != nil {
		return Result{}, err
	}

	g.apply(res)
	return res, nil
}

func (g *GameState) apply(res Result) {
	g.Board = res.Board
	g.Score += res.Score
	g.TotalScore += res.Score
	g.Combo = res.Combo

	switch {
	case g.Score >= g.Config.TargetScore:
		g.Won = true
	case g.MovesLeft <= 0:
		g.Lost = true
	}

	if !g.Over() && !HasValidMove(g.Board) {
		g.Board = Shuffle(g.resolver.rnd, g.Board)
		g.AutoShuffles++
		Log.WithField("level", g.Level).Info("no valid moves left, board reshuffled")
	}

	Log.WithFields(logrus.Fields{
		"score":  g.Score,
		"target": g.Config.TargetScore,
		"moves":  g.MovesLeft,
		"won":    g.Won,
		"lost":   g.Lost,
	}).Debug("turn applied")
}

// Hint returns the first valid move in row-major order.
func (g *GameState) Hint() (Move, bool) {
	moves := FindValidSwaps(g.Board)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[0], true
}

func (g *GameState) NextLevel() error {
	if !g.Won {
		return ErrLevelNotWon
	}
	return g.startLevel(g.Level + 1)
}

// Expired marks a timed level lost once its limit has elapsed at now and
// reports whether the level ran out of time.
func (g *GameState) Expired(now time.Time) bool {
	if g.Config.TimeLimit > 0 && !g.Over() && now.Sub(g.StartedAt) >= g.Config.TimeLimit {
		g.Lost = true
		g.TimedOut = true
		Log.WithField("level", g.Level).Debug("level timed out")
	}
	return g.TimedOut
}

// Remaining is the time left on a timed level, zero when untimed.
func (g *GameState) Remaining(now time.Time) time.Duration {
	if g.Config.TimeLimit == 0 {
		return 0
	}
	return max(g.Config.TimeLimit-now.Sub(g.StartedAt), 0)
}
