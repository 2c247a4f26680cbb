package match3

import (
	"math/rand/v2"
)

// Drop is the presentation projection of one token moving during gravity.
// Freshly generated tokens start above the board (FromRow < 0).
type Drop struct {
	ID      CellID `json:"id"`
	Col     int    `json:"col"`
	FromRow int    `json:"from_row"`
	ToRow   int    `json:"to_row"`
}

func (d Drop) Fresh() bool {
	return d.FromRow < 0
}

/*
ApplyGravity compacts every column downward. Live tokens keep their ids and
relative order and are marked Dropping when they move; the vacated top slots
are filled with fresh tokens drawn from allowed, also marked Dropping. The
boolean reports whether anything moved or was created.
*/
func ApplyGravity(r *rand.Rand, b *Board, allowed []TokenType) (*Board, []Drop, bool) {
	var (
		drops  []Drop
		cells  = make([]Cell, len(b.cells))
		nextID = b.nextID
	)

	for col := range b.width {
		write := b.height - 1
		for row := b.height - 1; row >= 0; row-- {
			cell := b.at(row, col)
			if cell.Status.Vacant() {
				continue
			}
			if write != row {
				cell.Status = Dropping
				drops = append(drops, Drop{ID: cell.ID, Col: col, FromRow: row, ToRow: write})
			}
			cells[write*b.width+col] = cell
			write--
		}

		/*
		 * write+1 slots are left at the top of the column. New tokens stack
		 * above the board in the same order they will land.
		 */
		vacant := write + 1
		for row := write; row >= 0; row-- {
			cells[row*b.width+col] = Cell{
				ID:     nextID,
				Type:   randomToken(r, allowed),
				Status: Dropping,
			}
			drops = append(drops, Drop{ID: nextID, Col: col, FromRow: row - vacant, ToRow: row})
			nextID++
		}
	}

	return newBoard(b.width, b.height, cells, nextID), drops, len(drops) > 0
}
