package match3

import (
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

var Log = logrus.New()

type IDSet = mapset.Set[CellID]

func NewIDSet(ids ...CellID) IDSet {
	s := mapset.New[CellID]()
	for _, id := range ids {
		s.Put(id)
	}
	return s
}

// SortedIDs returns the members of s in ascending order.
func SortedIDs(s IDSet) []CellID {
	ids := make([]CellID, 0, s.Size())
	s.Each(func(id CellID) {
		ids = append(ids, id)
	})
	slices.Sort(ids)
	return ids
}

func unionInto(dst IDSet, ids ...CellID) (added int) {
	for _, id := range ids {
		if !dst.Has(id) {
			dst.Put(id)
			added++
		}
	}
	return
}

func iif[T any](condition bool, valueIfTrue, valueIfFalse T) T {
	if condition {
		return valueIfTrue
	} else {
		return valueIfFalse
	}
}

func absDiff(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func cellIDs(cells []Cell) []CellID {
	ids := make([]CellID, len(cells))
	for i, c := range cells {
		ids[i] = c.ID
	}
	return ids
}
