package match3

import (
	"github.com/sirupsen/logrus"
)

type Phase int8

const (
	PhaseIdle Phase = iota
	PhaseDetecting
	PhaseExpanding
	PhaseScoring
	PhaseClearing
	PhaseDropping
	PhaseSettled
)

var phaseNames = [...]string{
	"idle", "detecting", "expanding", "scoring", "clearing", "dropping", "settled",
}

func (p Phase) String() string {
	if p < PhaseIdle || p > PhaseSettled {
		return "invalid"
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// TurnContext carries the session values a turn is resolved against.
type TurnContext struct {
	Level   int
	Combo   int
	Allowed []TokenType
	Anchor  *Position // swap destination; only consulted on the first pass
}

type GroupInfo struct {
	Type    TokenType   `json:"type"`
	Size    int         `json:"size"`
	Kind    SpecialKind `json:"kind"`
	Cells   []CellID    `json:"cells"`
	Special CellID      `json:"special,omitempty"`
}

// Pass records one detecting..settled cycle.
type Pass struct {
	Index     int         `json:"index"`
	Matched   []CellID    `json:"matched"`
	Cleared   []CellID    `json:"cleared"`
	Detonated []CellID    `json:"detonated,omitempty"`
	Expanded  bool        `json:"expanded"`
	Groups    []GroupInfo `json:"groups"`
	Created   []Cell      `json:"created,omitempty"`
	Combo     int         `json:"combo"`
	Score     int64       `json:"score"`
	Drops     []Drop      `json:"drops,omitempty"`
}

// Frame is the board as it stands after a phase transition.
type Frame struct {
	Phase Phase  `json:"phase"`
	Pass  int    `json:"pass"`
	Board *Board `json:"-"`
}

type Result struct {
	Board  *Board
	Passes []Pass
	Score  int64
	Combo  int
	Capped bool
	Frames []Frame
}

// Cleared reports whether the turn removed at least one cell.
func (res Result) Cleared() bool {
	return len(res.Passes) > 0
}

/*
Turn is one resolution in progress. Each call to Step performs exactly one
phase transition on an immutable snapshot, so a caller can pace the phases
for animation. Step returns false once the turn is back to Idle.
*/
type Turn struct {
	resolver *Resolver
	ctx      TurnContext
	phase    Phase
	done     bool
	board    *Board
	trigger  Trigger
	combo    int

	natural IDSet
	cleared IDSet
	spent   IDSet
	groups  []Group
	pass    Pass

	result Result
}

func (t *Turn) Phase() Phase  { return t.phase }
func (t *Turn) Board() *Board { return t.board }
func (t *Turn) Done() bool    { return t.done }

func (t *Turn) Frame() Frame {
	return Frame{Phase: t.phase, Pass: len(t.result.Passes), Board: t.board}
}

// Result is complete only once Step has returned false.
func (t *Turn) Result() Result {
	return t.result
}

func (t *Turn) Step() bool {
	if t.done {
		return false
	}
	switch t.phase {
	case PhaseIdle, PhaseSettled:
		t.detect()
	case PhaseDetecting:
		t.expand()
	case PhaseExpanding:
		t.score()
	case PhaseScoring:
		t.clear()
	case PhaseClearing:
		t.drop()
	case PhaseDropping:
		t.settle()
	}
	if t.resolver.record {
		t.result.Frames = append(t.result.Frames, t.Frame())
	}
	return !t.done
}

func (t *Turn) detect() {
	if len(t.result.Passes) >= t.resolver.Rules.MaxPasses {
		Log.WithFields(logrus.Fields{
			"passes": len(t.result.Passes),
			"board":  "\n" + t.board.String(),
		}).Warn("cascade pass cap reached, ending turn")
		t.result.Capped = true
		t.finish()
		return
	}

	t.natural = FindMatches(t.board)
	t.cleared = NewIDSet(SortedIDs(t.natural)...)
	t.spent = NewIDSet()

	if !t.trigger.empty() {
		unionInto(t.cleared, SortedIDs(t.trigger.Cleared)...)
		unionInto(t.spent, SortedIDs(t.trigger.Spent)...)
	}
	t.trigger = Trigger{}

	if t.cleared.Size() == 0 {
		t.finish()
		return
	}

	t.pass = Pass{
		Index:   len(t.result.Passes),
		Matched: SortedIDs(t.natural),
		Combo:   t.combo,
	}
	t.phase = PhaseDetecting
}

// expand detonates every not-yet-spent special in the cleared set, breadth
// first, so chains of specials resolve within one pass.
func (t *Turn) expand() {
	queue := SortedIDs(t.cleared)
	for head := 0; head < len(queue); head++ {
		cell, ok := t.board.Cell(queue[head])
		if !ok || cell.Special == None || t.spent.Has(cell.ID) {
			continue
		}
		t.spent.Put(cell.ID)
		t.pass.Detonated = append(t.pass.Detonated, cell.ID)

		targets := GetSpecialBlastTargets(
			t.board, cell, t.resolver.rnd, t.resolver.Rules.WildcardFallback,
		)
		for _, target := range targets {
			if target.Status.Vacant() || t.cleared.Has(target.ID) {
				continue
			}
			t.cleared.Put(target.ID)
			queue = append(queue, target.ID)
		}
	}
	t.pass.Expanded = len(t.pass.Detonated) > 0
	t.phase = PhaseExpanding
}

// score classifies the natural groups, places new specials and scores the pass.
func (t *Turn) score() {
	var anchor *Position
	if t.pass.Index == 0 {
		anchor = t.ctx.Anchor
	}

	t.groups = GetConnectedGroups(t.board, t.natural)
	for _, g := range t.groups {
		info := GroupInfo{Type: g.Type(), Size: len(g), Kind: ClassifyMatchGroup(g), Cells: g.IDs()}
		if info.Kind != None {
			special := PlaceSpecial(g, anchor)
			special.Special = info.Kind
			special.Status = Created
			if info.Kind == Wildcard {
				special.Type = Prism
			}
			t.pass.Created = append(t.pass.Created, special)
			info.Special = special.ID
		}
		t.pass.Groups = append(t.pass.Groups, info)
	}

	debris := t.cleared.Size() - t.natural.Size()
	t.pass.Score = t.resolver.Rules.PassScore(t.groups, debris, t.combo, t.ctx.Level)
	t.phase = PhaseScoring
}

func (t *Turn) clear() {
	created := make(map[CellID]Cell, len(t.pass.Created))
	for _, c := range t.pass.Created {
		created[c.ID] = c
	}

	t.board = t.board.mutate(func(cells []Cell) {
		for i := range cells {
			if c, ok := created[cells[i].ID]; ok {
				cells[i] = c
				continue
			}
			if t.cleared.Has(cells[i].ID) {
				cells[i].Status = Matched
				cells[i].Special = None
				t.pass.Cleared = append(t.pass.Cleared, cells[i].ID)
			}
		}
	})
	t.phase = PhaseClearing
}

func (t *Turn) drop() {
	t.board, t.pass.Drops, _ = ApplyGravity(t.resolver.rnd, t.board, t.ctx.Allowed)
	t.phase = PhaseDropping
}

func (t *Turn) settle() {
	t.board = t.board.settle()
	for _, c := range t.board.cells {
		if c.Status.Vacant() {
			panic(AssertionError{"vacant slot left after gravity"})
		}
	}

	t.result.Passes = append(t.result.Passes, t.pass)
	t.result.Score += t.pass.Score
	t.combo++

	Log.WithFields(logrus.Fields{
		"pass":     t.pass.Index,
		"matched":  len(t.pass.Matched),
		"cleared":  len(t.pass.Cleared),
		"expanded": t.pass.Expanded,
		"created":  len(t.pass.Created),
		"score":    t.pass.Score,
	}).Debug("pass settled")

	t.phase = PhaseSettled
}

func (t *Turn) finish() {
	t.phase = PhaseIdle
	t.done = true
	t.result.Board = t.board
	t.result.Combo = iif(t.result.Cleared(), t.combo, 0)
}
