package match3

const minRun = 3

func matchable(c Cell) bool {
	return !c.Status.Vacant() && c.Type != NoToken
}

/*
FindMatches returns the ids of every cell that belongs to a horizontal or
vertical run of at least three identical token types. A run of length L marks
all L cells. Prism tokens only match other Prism tokens here.
*/
func FindMatches(b *Board) IDSet {
	matched := NewIDSet()

	for r := range b.height {
		scanLine(b.width, func(i int) Cell { return b.at(r, i) }, matched)
	}
	for c := range b.width {
		scanLine(b.height, func(i int) Cell { return b.at(i, c) }, matched)
	}

	return matched
}

func scanLine(n int, cellAt func(int) Cell, matched IDSet) {
	for start := 0; start+minRun <= n; {
		first := cellAt(start)
		if !matchable(first) {
			start++
			continue
		}
		end := start + 1
		for end < n {
			next := cellAt(end)
			if !matchable(next) || next.Type != first.Type {
				break
			}
			end++
		}
		if end-start >= minRun {
			for i := start; i < end; i++ {
				matched.Put(cellAt(i).ID)
			}
		}
		start = end
	}
}

// HasMatch reports whether any run of three exists, without building a set.
func HasMatch(b *Board) bool {
	return FindMatches(b).Size() > 0
}
