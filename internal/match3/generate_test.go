package match3

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInitialBoard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width, height, gems int
	}{
		{8, 8, 3},
		{8, 8, 5},
		{8, 8, 8},
		{3, 12, 4},
		{16, 5, 6},
	}

	for _, test := range tests {
		name := fmt.Sprintf("%dx%d(%d)", test.width, test.height, test.gems)
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := newRand()
			allowed := OrdinaryTypes[:test.gems]
			for range 50 {
				b, err := CreateInitialBoard(r, test.width, test.height, allowed)
				require.NoError(t, err)
				assert.False(t, HasMatch(b), "initial match on\n%s", b)
				assert.Equal(t, CellID(test.width*test.height+1), b.NextID())
				for i, c := range b.Cells() {
					assert.Equal(t, CellID(i+1), c.ID)
					assert.True(t, slices.Contains(allowed, c.Type))
					assert.Equal(t, Idle, c.Status)
				}
			}
		})
	}
}

func TestCreateInitialBoardIsDeterministic(t *testing.T) {
	t.Parallel()

	a, err := CreateInitialBoard(newRand(), 8, 8, OrdinaryTypes[:5])
	require.NoError(t, err)
	b, err := CreateInitialBoard(newRand(), 8, 8, OrdinaryTypes[:5])
	require.NoError(t, err)
	assert.Equal(t, a.Types(), b.Types())
}

func TestCreateInitialBoardFallsBack(t *testing.T) {
	t.Parallel()

	/* a single type cannot avoid runs, so the constraint is dropped */
	b, err := CreateInitialBoard(newRand(), 4, 4, []TokenType{Topaz})
	require.NoError(t, err)
	assert.Equal(t, 16, FindMatches(b).Size())
}

func TestCreateInitialBoardErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		allowed       []TokenType
		field         string
	}{
		{name: "zero width", width: 0, height: 8, allowed: OrdinaryTypes, field: "width"},
		{name: "negative height", width: 8, height: -1, allowed: OrdinaryTypes, field: "height"},
		{name: "no types", width: 8, height: 8, allowed: nil, field: "allowed types"},
		{name: "prism", width: 8, height: 8, allowed: []TokenType{Ruby, Prism}, field: "allowed types"},
		{name: "duplicate", width: 8, height: 8, allowed: []TokenType{Ruby, Amber, Ruby}, field: "allowed types"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := CreateInitialBoard(newRand(), test.width, test.height, test.allowed)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, test.field, ce.Field)
		})
	}
}
