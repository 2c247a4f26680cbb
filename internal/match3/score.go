package match3

import (
	"github.com/shopspring/decimal"
)

// Rules holds the tunable constants of resolution.
type Rules struct {
	BasePoints       int64 // per matched cell in a natural group
	DebrisPoints     int64 // per cell cleared only by a blast or trigger
	WildcardFallback int   // random targets of a wildcard detonated alone
	MaxPasses        int   // safety cap on cascade passes per turn
}

func DefaultRules() Rules {
	return Rules{
		BasePoints:       20,
		DebrisPoints:     10,
		WildcardFallback: 5,
		MaxPasses:        100,
	}
}

// Validate rejects rule sets that could not resolve a turn.
func (rules Rules) Validate() error {
	switch {
	case rules.MaxPasses < 1:
		return configErrorf("max passes", "must be positive, got %d", rules.MaxPasses)
	case rules.BasePoints < 0:
		return configErrorf("base points", "must not be negative, got %d", rules.BasePoints)
	case rules.DebrisPoints < 0:
		return configErrorf("debris points", "must not be negative, got %d", rules.DebrisPoints)
	case rules.WildcardFallback < 0:
		return configErrorf("wildcard fallback", "must not be negative, got %d", rules.WildcardFallback)
	}
	return nil
}

var (
	one     = decimal.NewFromInt(1)
	half    = decimal.New(5, -1)
	tenth   = decimal.New(1, -1)
	oneHalf = decimal.New(15, -1)
	three   = decimal.NewFromInt(3)
)

func sizeMultiplier(size int) decimal.Decimal {
	switch {
	case size >= 5:
		return three
	case size == 4:
		return oneHalf
	default:
		return one
	}
}

// comboMultiplier is 1 + combo*(0.5 + 0.1*(level-1)).
func comboMultiplier(combo, level int) decimal.Decimal {
	step := half.Add(tenth.Mul(decimal.NewFromInt(int64(level - 1))))
	return one.Add(decimal.NewFromInt(int64(combo)).Mul(step))
}

// levelMultiplier is 1 + 0.5*(level-1).
func levelMultiplier(level int) decimal.Decimal {
	return one.Add(half.Mul(decimal.NewFromInt(int64(level - 1))))
}

func (rules Rules) groupPoints(size int) decimal.Decimal {
	return decimal.NewFromInt(int64(size) * rules.BasePoints).Mul(sizeMultiplier(size))
}

/*
PassScore scores one resolution pass: every natural group earns
size*base*sizeMultiplier, blast debris earns a flat amount per cell, and the
sum is scaled by the combo and level multipliers and floored.
*/
func (rules Rules) PassScore(groups []Group, debris, combo, level int) int64 {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(rules.groupPoints(len(g)))
	}
	total = total.Add(decimal.NewFromInt(int64(debris) * rules.DebrisPoints))
	total = total.Mul(comboMultiplier(combo, level)).Mul(levelMultiplier(level))
	return total.Floor().IntPart()
}
