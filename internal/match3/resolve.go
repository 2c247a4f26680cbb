package match3

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Resolver runs turns against a fixed rule set. All randomness (refill and
// wildcard fallback targets) is drawn from rnd.
type Resolver struct {
	Rules  Rules
	rnd    *rand.Rand
	record bool
}

func NewResolver(rules Rules, r *rand.Rand) *Resolver {
	return &Resolver{Rules: rules, rnd: r}
}

// RecordFrames makes every subsequent turn keep a snapshot per phase in
// [Result.Frames].
func (res *Resolver) RecordFrames(on bool) {
	res.record = on
}

// Begin prepares a turn on b. trigger holds cells pre-marked by the player
// action and may be the zero value.
func (res *Resolver) Begin(b *Board, ctx TurnContext, trigger Trigger) (*Turn, error) {
	if err := res.Rules.Validate(); err != nil {
		return nil, err
	}
	if err := validateAllowed(ctx.Allowed); err != nil {
		return nil, err
	}
	ctx.Level = max(ctx.Level, 1)
	return &Turn{
		resolver: res,
		ctx:      ctx,
		phase:    PhaseIdle,
		board:    b,
		trigger:  trigger,
		combo:    ctx.Combo,
		result:   Result{Board: b},
	}, nil
}

func (res *Resolver) Resolve(b *Board, ctx TurnContext, trigger Trigger) (Result, error) {
	turn, err := res.Begin(b, ctx, trigger)
	if err != nil {
		return Result{}, err
	}
	for turn.Step() {
	}
	return turn.Result(), nil
}

type SwapResult struct {
	Valid   bool
	Combo   ComboKind
	Swapped *Board // the exchanged board before resolution, cells marked Swapping
	Result
}

/*
Swap exchanges the tokens at from and to and resolves the outcome. A swap
that neither forms a match nor triggers a special interaction is not an
error: the result is invalid and carries the original board.
*/
func (res *Resolver) Swap(b *Board, from, to Position, ctx TurnContext) (SwapResult, error) {
	turn, sr, err := res.BeginSwap(b, from, to, ctx)
	if err != nil || turn == nil {
		return sr, err
	}
	for turn.Step() {
	}
	sr.Result = turn.Result()
	return sr, nil
}

// BeginSwap validates and applies the exchange and returns the turn that
// resolves it, or a nil turn for an invalid swap.
func (res *Resolver) BeginSwap(b *Board, from, to Position, ctx TurnContext) (*Turn, SwapResult, error) {
	if !b.InBounds(from) || !b.InBounds(to) {
		return nil, SwapResult{}, fmt.Errorf("%w: %s <-> %s", ErrOutOfBounds, from, to)
	}
	if !from.Adjacent(to) {
		return nil, SwapResult{}, fmt.Errorf("%w: %s <-> %s", ErrNotAdjacent, from, to)
	}

	swapped := b.Swapped(from, to)
	board, trigger, special := ComboTrigger(swapped, to, from)
	sr := SwapResult{
		Combo: trigger.Kind,
		Swapped: swapped.mutate(func(cells []Cell) {
			cells[from.Row*b.width+from.Col].Status = Swapping
			cells[to.Row*b.width+to.Col].Status = Swapping
		}),
	}

	if !special && !HasMatch(swapped) {
		Log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("swap reverted")
		sr.Result = Result{Board: b}
		return nil, sr, nil
	}

	ctx.Anchor = &to
	turn, err := res.Begin(board, ctx, trigger)
	if err != nil {
		return nil, SwapResult{}, err
	}
	sr.Valid = true
	return turn, sr, nil
}

// Bomb clears the 3x3 square around center and resolves the consequences.
func (res *Resolver) Bomb(b *Board, center Position, ctx TurnContext) (Result, error) {
	turn, err := res.BeginBomb(b, center, ctx)
	if err != nil {
		return Result{}, err
	}
	for turn.Step() {
	}
	return turn.Result(), nil
}

func (res *Resolver) BeginBomb(b *Board, center Position, ctx TurnContext) (*Turn, error) {
	if !b.InBounds(center) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, center)
	}
	return res.Begin(b, ctx, BombTrigger(b, center))
}
