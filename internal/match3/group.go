package match3

// Group is one connected component of same-type matched cells, in BFS
// traversal order.
type Group []Cell

func (g Group) Type() TokenType {
	if len(g) == 0 {
		return NoToken
	}
	return g[0].Type
}

func (g Group) IDs() []CellID {
	return cellIDs(g)
}

func (g Group) Contains(p Position) bool {
	for _, c := range g {
		if c.Row == p.Row && c.Col == p.Col {
			return true
		}
	}
	return false
}

// collinear reports whether all cells share one row (byRow) or one column.
func (g Group) collinear() (byRow, byCol bool) {
	byRow, byCol = true, true
	for _, c := range g[1:] {
		if c.Row != g[0].Row {
			byRow = false
		}
		if c.Col != g[0].Col {
			byCol = false
		}
	}
	return
}

var neighbours = [4]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

/*
GetConnectedGroups partitions ids into 4-connected components. A neighbour
joins a component only if it is in ids and has exactly the seed's type, so
touching runs of different colours stay separate. Seeds are taken in
row-major order.
*/
func GetConnectedGroups(b *Board, ids IDSet) []Group {
	var (
		groups  []Group
		visited = make([]bool, len(b.cells))
		queue   = make([]int, 0, ids.Size())
	)

	for seed, cell := range b.cells {
		if visited[seed] || !ids.Has(cell.ID) {
			continue
		}

		visited[seed] = true
		queue = append(queue[:0], seed)
		var group Group

		for head := 0; head < len(queue); head++ {
			curr := b.cells[queue[head]]
			group = append(group, curr)

			for _, d := range neighbours {
				p := Position{Row: curr.Row + d.Row, Col: curr.Col + d.Col}
				if !b.InBounds(p) {
					continue
				}
				next := p.Row*b.width + p.Col
				if visited[next] {
					continue
				}
				nc := b.cells[next]
				if ids.Has(nc.ID) && nc.Type == cell.Type {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}

// ClassifyMatchGroup maps a group's size and shape to the special it creates.
func ClassifyMatchGroup(g Group) SpecialKind {
	if len(g) < 4 {
		return None
	}
	byRow, byCol := g.collinear()
	if len(g) == 4 {
		switch {
		case byRow:
			return ColumnClear
		case byCol:
			return RowClear
		default:
			return None
		}
	}
	return iif(byRow || byCol, Wildcard, AreaClear)
}
