package match3

import (
	"math/rand/v2"
)

// PlaceSpecial picks the group member that becomes the new special token:
// the anchor when it belongs to the group, the middle member otherwise.
func PlaceSpecial(g Group, anchor *Position) Cell {
	if anchor != nil {
		for _, c := range g {
			if c.Row == anchor.Row && c.Col == anchor.Col {
				return c
			}
		}
	}
	return g[len(g)/2]
}

func rowCells(b *Board, row int) []Cell {
	if row < 0 || row >= b.height {
		return nil
	}
	return append([]Cell(nil), b.cells[row*b.width:(row+1)*b.width]...)
}

func colCells(b *Board, col int) []Cell {
	if col < 0 || col >= b.width {
		return nil
	}
	cells := make([]Cell, 0, b.height)
	for r := range b.height {
		cells = append(cells, b.at(r, col))
	}
	return cells
}

// squareCells returns the cells within radius of center, clamped to the board.
func squareCells(b *Board, center Position, radius int) []Cell {
	var cells []Cell
	for r := center.Row - radius; r <= center.Row+radius; r++ {
		for c := center.Col - radius; c <= center.Col+radius; c++ {
			if cell, ok := b.At(Position{Row: r, Col: c}); ok {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

/*
GetSpecialBlastTargets returns the cells detonated by a placed special token.
A wildcard without a partner picks itself plus fallback random distinct
cells from r.
*/
func GetSpecialBlastTargets(b *Board, cell Cell, r *rand.Rand, fallback int) []Cell {
	switch cell.Special {
	case RowClear:
		return rowCells(b, cell.Row)
	case ColumnClear:
		return colCells(b, cell.Col)
	case AreaClear:
		return squareCells(b, cell.Pos(), 1)
	case Wildcard:
		return randomTargets(b, cell, r, fallback)
	}
	return nil
}

func randomTargets(b *Board, cell Cell, r *rand.Rand, n int) []Cell {
	targets := []Cell{cell}
	others := make([]Cell, 0, len(b.cells))
	for _, c := range b.cells {
		if c.ID != cell.ID && !c.Status.Vacant() {
			others = append(others, c)
		}
	}
	n = min(n, len(others))
	/* partial Fisher-Yates: the first n entries end up a uniform sample */
	for i := range n {
		j := i + r.IntN(len(others)-i)
		others[i], others[j] = others[j], others[i]
		targets = append(targets, others[i])
	}
	return targets
}

// GetBombAffectedCells returns the ids in the clamped 3x3 square around
// center, regardless of match state.
func GetBombAffectedCells(b *Board, center Position) []CellID {
	return cellIDs(squareCells(b, center, 1))
}
