package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func groupsOf(sizes ...int) []Group {
	groups := make([]Group, len(sizes))
	for i, n := range sizes {
		groups[i] = make(Group, n)
	}
	return groups
}

func TestPassScore(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		name   string
		rules  Rules
		groups []Group
		debris int
		combo  int
		level  int
		want   int64
	}{
		{name: "nothing", rules: rules, level: 1, want: 0},
		{name: "three", rules: rules, groups: groupsOf(3), level: 1, want: 60},
		{name: "four", rules: rules, groups: groupsOf(4), level: 1, want: 120},
		{name: "five", rules: rules, groups: groupsOf(5), level: 1, want: 300},
		{name: "two groups", rules: rules, groups: groupsOf(3, 4), level: 1, want: 180},
		{name: "debris only", rules: rules, debris: 7, level: 1, want: 70},
		{name: "combo 1", rules: rules, groups: groupsOf(3), combo: 1, level: 1, want: 90},
		{name: "combo 2", rules: rules, groups: groupsOf(4), combo: 2, level: 1, want: 240},
		{name: "level 2", rules: rules, groups: groupsOf(3), level: 2, want: 90},
		{name: "level 2 combo 2", rules: rules, groups: groupsOf(3), combo: 2, level: 2, want: 198},
		{name: "level 3 combo 1", rules: rules, groups: groupsOf(4), combo: 1, level: 3, want: 408},
		{name: "debris scaled", rules: rules, debris: 1, combo: 1, level: 4, want: 45},
		/* 3 * 3.1 * 2 = 18.6 */
		{name: "floored", rules: Rules{BasePoints: 1}, groups: groupsOf(3), combo: 3, level: 3, want: 18},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := test.rules.PassScore(test.groups, test.debris, test.combo, test.level)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultRules().Validate())

	tests := []struct {
		name  string
		edit  func(r *Rules)
		field string
	}{
		{name: "zero passes", edit: func(r *Rules) { r.MaxPasses = 0 }, field: "max passes"},
		{name: "negative base", edit: func(r *Rules) { r.BasePoints = -20 }, field: "base points"},
		{name: "negative debris", edit: func(r *Rules) { r.DebrisPoints = -1 }, field: "debris points"},
		{name: "negative fallback", edit: func(r *Rules) { r.WildcardFallback = -5 }, field: "wildcard fallback"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			rules := DefaultRules()
			test.edit(&rules)
			var ce *ConfigError
			if assert.ErrorAs(t, rules.Validate(), &ce) {
				assert.Equal(t, test.field, ce.Field)
			}
		})
	}
}

func TestMultipliers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1", sizeMultiplier(3).String())
	assert.Equal(t, "1.5", sizeMultiplier(4).String())
	assert.Equal(t, "3", sizeMultiplier(7).String())
	assert.Equal(t, "1", comboMultiplier(0, 5).String())
	assert.Equal(t, "2.4", comboMultiplier(2, 3).String())
	assert.Equal(t, "3", levelMultiplier(5).String())
}
