package match3

// Move is a pair of adjacent positions to exchange.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

/*
FindValidSwaps lists every adjacent exchange that would either form a run
of three or trigger a special interaction, scanning rightward and downward
neighbours in row-major order.
*/
func FindValidSwaps(b *Board) []Move {
	var moves []Move
	for _, cell := range b.cells {
		if cell.Status.Vacant() {
			continue
		}
		from := cell.Pos()
		for _, d := range [2]Position{{0, 1}, {1, 0}} {
			to := Position{Row: from.Row + d.Row, Col: from.Col + d.Col}
			if other, ok := b.At(to); !ok || other.Status.Vacant() {
				continue
			}
			if validSwap(b, from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// HasValidMove reports whether the board is playable.
func HasValidMove(b *Board) bool {
	return len(FindValidSwaps(b)) > 0
}

func validSwap(b *Board, from, to Position) bool {
	swapped := b.Swapped(from, to)
	if _, _, special := ComboTrigger(swapped, to, from); special {
		return true
	}
	return HasMatch(swapped)
}
