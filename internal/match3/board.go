package match3

import (
	"strings"
)

const (
	DefaultWidth  = 8
	DefaultHeight = 8
)

// Board is an immutable snapshot of the grid. Every slot holds exactly one
// cell; transforms return a new board and leave the receiver untouched.
type Board struct {
	width, height int
	cells         []Cell // row-major
	index         map[CellID]int
	nextID        CellID
}

func newBoard(width, height int, cells []Cell, nextID CellID) *Board {
	b := &Board{
		width:  width,
		height: height,
		cells:  cells,
		index:  make(map[CellID]int, len(cells)),
		nextID: nextID,
	}
	for i := range b.cells {
		b.cells[i].Row = i / width
		b.cells[i].Col = i % width
		b.index[b.cells[i].ID] = i
	}
	return b
}

func validateDims(width, height int) error {
	if width < 1 {
		return configErrorf("width", "must be positive, got %d", width)
	}
	if height < 1 {
		return configErrorf("height", "must be positive, got %d", height)
	}
	return nil
}

/*
ParseBoard builds a board from rows of token letters (see [TokenType.Letter]).
A '.' is an empty placeholder. Cells get ids 1..n in row-major order.
*/
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, configErrorf("rows", "board has no rows")
	}
	width := len(rows[0])
	if err := validateDims(width, len(rows)); err != nil {
		return nil, err
	}
	cells := make([]Cell, 0, width*len(rows))
	for r, row := range rows {
		if len(row) != width {
			return nil, configErrorf("rows", "row %d has %d cells, want %d", r, len(row), width)
		}
		for c := range width {
			t, ok := tokenFromLetter(row[c])
			if !ok {
				return nil, configErrorf("rows", "unknown token %q at %d:%d", row[c], r, c)
			}
			cell := Cell{ID: CellID(len(cells) + 1), Type: t}
			if t == NoToken {
				cell.Status = Empty
			}
			if t == Prism {
				cell.Special = Wildcard
			}
			cells = append(cells, cell)
		}
	}
	return newBoard(width, len(rows), cells, CellID(len(cells)+1)), nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Size() int   { return len(b.cells) }

// NextID is the identifier the next generated token will receive.
func (b *Board) NextID() CellID { return b.nextID }

func (b *Board) InBounds(p Position) bool {
	return 0 <= p.Row && p.Row < b.height && 0 <= p.Col && p.Col < b.width
}

func (b *Board) At(p Position) (Cell, bool) {
	if !b.InBounds(p) {
		return Cell{}, false
	}
	return b.cells[p.Row*b.width+p.Col], true
}

func (b *Board) at(row, col int) Cell {
	return b.cells[row*b.width+col]
}

func (b *Board) Cell(id CellID) (Cell, bool) {
	i, ok := b.index[id]
	if !ok {
		return Cell{}, false
	}
	return b.cells[i], true
}

// Cells returns a copy of all cells in row-major order.
func (b *Board) Cells() []Cell {
	return append([]Cell(nil), b.cells...)
}

func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for r := range b.height {
		rows[r] = append([]Cell(nil), b.cells[r*b.width:(r+1)*b.width]...)
	}
	return rows
}

// Types returns the token type grid, mainly for comparisons in tests and logs.
func (b *Board) Types() [][]TokenType {
	types := make([][]TokenType, b.height)
	for r := range b.height {
		types[r] = make([]TokenType, b.width)
		for c := range b.width {
			types[r][c] = b.at(r, c).Type
		}
	}
	return types
}

func (b *Board) Clone() *Board {
	return newBoard(b.width, b.height, b.Cells(), b.nextID)
}

// mutate copies the cells, lets fn edit them in place and returns the new
// snapshot with logical coordinates and the id index rebuilt.
func (b *Board) mutate(fn func(cells []Cell)) *Board {
	cells := b.Cells()
	fn(cells)
	return newBoard(b.width, b.height, cells, b.nextID)
}

func (b *Board) WithCell(p Position, fn func(c *Cell)) *Board {
	if !b.InBounds(p) {
		return b
	}
	return b.mutate(func(cells []Cell) {
		fn(&cells[p.Row*b.width+p.Col])
	})
}

// Swapped exchanges the tokens at a and c. Identifiers travel with the tokens.
func (b *Board) Swapped(a, c Position) *Board {
	if !b.InBounds(a) || !b.InBounds(c) {
		return b
	}
	return b.mutate(func(cells []Cell) {
		i, j := a.Row*b.width+a.Col, c.Row*b.width+c.Col
		cells[i], cells[j] = cells[j], cells[i]
	})
}

func (b *Board) withStatus(ids IDSet, status Status) *Board {
	return b.mutate(func(cells []Cell) {
		for i := range cells {
			if ids.Has(cells[i].ID) {
				cells[i].Status = status
			}
		}
	})
}

// settle normalises every status to Idle.
func (b *Board) settle() *Board {
	return b.mutate(func(cells []Cell) {
		for i := range cells {
			if cells[i].Status != Empty {
				cells[i].Status = Idle
			}
		}
	})
}

// String renders one line per row; specials are bracketed, vacant slots are dots.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.height {
		for c := range b.width {
			cell := b.at(r, c)
			ch := cell.Type.Letter()
			if cell.Status.Vacant() {
				ch = '.'
			}
			if cell.Special != None && !cell.Status.Vacant() {
				sb.WriteByte('[')
				sb.WriteByte(ch)
				sb.WriteByte(']')
			} else {
				sb.WriteByte(' ')
				sb.WriteByte(ch)
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
