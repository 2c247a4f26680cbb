package match3

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

const shuffleAttempts = 100

/*
Shuffle rearranges the live tokens of b. Identifiers and specials travel
with their tokens and vacant slots stay where they are. Tokens are dealt in
random order into row-major slots, each slot taking the first token that
does not complete a run with the two slots to its left or above. A deal that
gets stuck or leaves no valid move is retried; after shuffleAttempts the
last plain permutation is kept.
*/
func Shuffle(r *rand.Rand, b *Board) *Board {
	var slots []int
	for i, c := range b.cells {
		if !c.Status.Vacant() {
			slots = append(slots, i)
		}
	}

	for attempt := range shuffleAttempts {
		out, ok := deal(r, b, slots)
		if ok && HasValidMove(out) {
			Log.WithField("attempts", attempt+1).Debug("board shuffled")
			return out
		}
	}

	out := b.mutate(func(cells []Cell) {
		r.Shuffle(len(slots), func(i, j int) {
			cells[slots[i]], cells[slots[j]] = cells[slots[j]], cells[slots[i]]
		})
	})
	Log.WithFields(logrus.Fields{
		"attempts": shuffleAttempts,
		"board":    "\n" + out.String(),
	}).Warn("no clean arrangement found, keeping a plain shuffle")
	return out
}

func deal(r *rand.Rand, b *Board, slots []int) (*Board, bool) {
	pool := make([]Cell, len(slots))
	for i, slot := range slots {
		pool[i] = b.cells[slot]
	}
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	cells := b.Cells()
	completes := func(slot int, t TokenType) bool {
		row, col := slot/b.width, slot%b.width
		same := func(i int) bool {
			return !cells[i].Status.Vacant() && cells[i].Type == t
		}
		if col >= 2 && same(slot-1) && same(slot-2) {
			return true
		}
		return row >= 2 && same(slot-b.width) && same(slot-2*b.width)
	}

	for _, slot := range slots {
		pick := -1
		for i, c := range pool {
			if !completes(slot, c.Type) {
				pick = i
				break
			}
		}
		if pick < 0 {
			return nil, false
		}
		cells[slot] = pool[pick]
		pool[pick] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}

	return newBoard(b.width, b.height, cells, b.nextID), true
}
