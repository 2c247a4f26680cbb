package match3

type ComboKind int8

const (
	NoCombo ComboKind = iota
	ComboDoubleWildcard
	ComboWildcardSpecial
	ComboWildcardColor
	ComboLines
	ComboLineArea
	ComboAreas
)

var comboNames = [...]string{
	"none", "wildcard+wildcard", "wildcard+special", "wildcard+color",
	"line+line", "line+area", "area+area",
}

func (k ComboKind) String() string {
	if k < NoCombo || k > ComboAreas {
		return "invalid"
	}
	return comboNames[k]
}

func (k ComboKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Trigger carries cells a player action marks for clearing before detection.
// Spent cells are cleared but do not detonate again during expansion.
type Trigger struct {
	Kind    ComboKind
	Cleared IDSet
	Spent   IDSet
}

func newTrigger(kind ComboKind) Trigger {
	return Trigger{Kind: kind, Cleared: NewIDSet(), Spent: NewIDSet()}
}

func (t Trigger) empty() bool {
	return t.Cleared.Size() == 0
}

// BombTrigger pre-marks the 3x3 square around center.
func BombTrigger(b *Board, center Position) Trigger {
	t := newTrigger(NoCombo)
	unionInto(t.Cleared, GetBombAffectedCells(b, center)...)
	return t
}

/*
ComboTrigger applies the direct-swap interaction rules to the tokens now at
dest (the swap destination) and other. It reports false when the pair has no
special interaction, in which case ordinary match detection decides the swap.
The returned board differs from b only for wildcard+special, where tokens are
converted before they detonate.
*/
func ComboTrigger(b *Board, dest, other Position) (*Board, Trigger, bool) {
	x, okx := b.At(dest)
	y, oky := b.At(other)
	if !okx || !oky {
		return b, Trigger{}, false
	}

	if y.Special == Wildcard && x.Special != Wildcard {
		x, y = y, x
	}

	switch {
	case x.Special == Wildcard && y.Special == Wildcard:
		t := newTrigger(ComboDoubleWildcard)
		unionInto(t.Cleared, cellIDs(b.cells)...)
		unionInto(t.Spent, x.ID, y.ID)
		return b, t, true

	case x.Special == Wildcard && y.Special == None:
		if !y.Type.Ordinary() || y.Status.Vacant() {
			return b, Trigger{}, false
		}
		t := newTrigger(ComboWildcardColor)
		for _, c := range b.cells {
			if c.Type == y.Type && !c.Status.Vacant() {
				t.Cleared.Put(c.ID)
			}
		}
		t.Cleared.Put(x.ID)
		t.Spent.Put(x.ID)
		return b, t, true

	case x.Special == Wildcard:
		t := newTrigger(ComboWildcardSpecial)
		converted := b.mutate(func(cells []Cell) {
			for i := range cells {
				if cells[i].Type == y.Type && !cells[i].Status.Vacant() {
					cells[i].Special = y.Special
					t.Cleared.Put(cells[i].ID)
				}
			}
		})
		t.Cleared.Put(x.ID)
		t.Spent.Put(x.ID)
		return converted, t, true

	case x.Special != None && y.Special != None:
		var t Trigger
		switch {
		case x.Special.IsLine() && y.Special.IsLine():
			t = newTrigger(ComboLines)
		case x.Special == AreaClear && y.Special == AreaClear:
			t = newTrigger(ComboAreas)
			unionInto(t.Cleared, cellIDs(squareCells(b, dest, 2))...)
		default:
			t = newTrigger(ComboLineArea)
			for d := -1; d <= 1; d++ {
				unionInto(t.Cleared, cellIDs(rowCells(b, dest.Row+d))...)
				unionInto(t.Cleared, cellIDs(colCells(b, dest.Col+d))...)
			}
		}
		/* neither is a wildcard here, so no randomness is needed */
		unionInto(t.Cleared, cellIDs(GetSpecialBlastTargets(b, x, nil, 0))...)
		unionInto(t.Cleared, cellIDs(GetSpecialBlastTargets(b, y, nil, 0))...)
		unionInto(t.Spent, x.ID, y.ID)
		return b, t, true
	}

	return b, Trigger{}, false
}
