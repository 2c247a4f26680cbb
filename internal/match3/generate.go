package match3

import (
	"math/rand/v2"
	"slices"
)

func validateAllowed(allowed []TokenType) error {
	if len(allowed) == 0 {
		return configErrorf("allowed types", "set is empty")
	}
	for i, t := range allowed {
		if !t.Ordinary() {
			return configErrorf("allowed types", "%s cannot be drawn at random", t)
		}
		if slices.Contains(allowed[:i], t) {
			return configErrorf("allowed types", "%s listed twice", t)
		}
	}
	return nil
}

/*
CreateInitialBoard fills a width x height board by uniform random choice from
allowed, skipping any type that would complete a run of three with the two
cells to the left or the two cells above. This is a local constraint only; it
does not guarantee that a valid move exists.
*/
func CreateInitialBoard(r *rand.Rand, width, height int, allowed []TokenType) (*Board, error) {
	if err := validateDims(width, height); err != nil {
		return nil, err
	}
	if err := validateAllowed(allowed); err != nil {
		return nil, err
	}

	cells := make([]Cell, width*height)
	candidates := make([]TokenType, 0, len(allowed))

	for row := range height {
		for col := range width {
			candidates = candidates[:0]
			for _, t := range allowed {
				if col >= 2 &&
					cells[row*width+col-1].Type == t &&
					cells[row*width+col-2].Type == t {
					continue
				}
				if row >= 2 &&
					cells[(row-1)*width+col].Type == t &&
					cells[(row-2)*width+col].Type == t {
					continue
				}
				candidates = append(candidates, t)
			}
			if len(candidates) == 0 {
				/* fewer than three allowed types can leave nothing legal */
				candidates = append(candidates, allowed...)
			}

			i := row*width + col
			cells[i] = Cell{
				ID:   CellID(i + 1),
				Type: candidates[r.IntN(len(candidates))],
			}
		}
	}

	b := newBoard(width, height, cells, CellID(len(cells)+1))
	Log.WithField("board", "\n"+b.String()).Debug("initial board created")
	return b, nil
}

func randomToken(r *rand.Rand, allowed []TokenType) TokenType {
	return allowed[r.IntN(len(allowed))]
}
