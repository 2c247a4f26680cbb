package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows []string
		want []CellID
	}{
		{name: "none", rows: baseRows, want: []CellID{}},
		{name: "row of three", rows: []string{"RRRT"}, want: []CellID{1, 2, 3}},
		{name: "row of five", rows: []string{"RRRRR"}, want: []CellID{1, 2, 3, 4, 5}},
		{name: "two runs in a row", rows: []string{"RRRTTT"}, want: []CellID{1, 2, 3, 4, 5, 6}},
		{name: "column", rows: []string{"R", "R", "R", "T"}, want: []CellID{1, 2, 3}},
		{name: "empty breaks a run", rows: []string{"RR.RR"}, want: []CellID{}},
		{name: "too narrow", rows: []string{"RR", "RR"}, want: []CellID{}},
		{name: "prism run", rows: []string{"PPPA"}, want: []CellID{1, 2, 3}},
		{
			name: "cross",
			rows: []string{
				"ARA",
				"RRR",
				"ARA",
			},
			want: []CellID{2, 4, 5, 6, 8},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			b := mustParse(t, test.rows...)
			assert.Equal(t, test.want, SortedIDs(FindMatches(b)))
			assert.Equal(t, len(test.want) > 0, HasMatch(b))
		})
	}
}

func TestFindMatchesSkipsMatchedCells(t *testing.T) {
	t.Parallel()

	b := mustParse(t, "RRRR")
	b = b.withStatus(NewIDSet(2), Matched)
	assert.Empty(t, SortedIDs(FindMatches(b)))
}
