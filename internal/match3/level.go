package match3

import (
	"time"
)

type LevelConfig struct {
	Level       int           `json:"level"`
	TargetScore int64         `json:"target_score"`
	Moves       int           `json:"moves"`
	TimeLimit   time.Duration `json:"time_limit,omitempty"` // zero means untimed
}

var authoredLevels = []LevelConfig{
	{Level: 1, TargetScore: 3000, Moves: 20},
	{Level: 2, TargetScore: 8000, Moves: 22},
	{Level: 3, TargetScore: 15000, Moves: 25},
	{Level: 4, TargetScore: 25000, Moves: 30},
	{Level: 5, TargetScore: 35000, Moves: 32, TimeLimit: 5 * time.Minute},
}

// GetLevelConfig returns the authored config for levels 1-5 and extrapolates
// linearly beyond them. Levels below 1 are treated as level 1.
func GetLevelConfig(level int) LevelConfig {
	level = max(level, 1)
	if level <= len(authoredLevels) {
		return authoredLevels[level-1]
	}
	return LevelConfig{
		Level:       level,
		TargetScore: 25000 + 10000*int64(level-4),
		Moves:       30 + 2*(level-4),
	}
}

const (
	defaultGemTypes = 5
	MinGemTypes     = 3
	MaxGemTypes     = len(OrdinaryTypes)
)

func ValidateGemTypes(n int) error {
	if n < MinGemTypes || n > MaxGemTypes {
		return configErrorf("gem types", "%d is outside %d..%d", n, MinGemTypes, MaxGemTypes)
	}
	return nil
}

const allKindsLevel = 4

/*
GetGemTypesForLevel returns the random pool for a level: the level-1 base
count (5, or override when non-zero) plus one extra kind on each of levels 2
and 3, and every ordinary kind from level 4 on. Prism never appears in the pool.
*/
func GetGemTypesForLevel(level, override int) ([]TokenType, error) {
	base := defaultGemTypes
	if override != 0 {
		if err := ValidateGemTypes(override); err != nil {
			return nil, err
		}
		base = override
	}
	n := MaxGemTypes
	if level < allKindsLevel {
		n = min(MaxGemTypes, base+max(level, 1)-1)
	}
	return append([]TokenType(nil), OrdinaryTypes[:n]...), nil
}
