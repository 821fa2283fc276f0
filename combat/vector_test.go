package combat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAttackVector(t *testing.T) {
	t.Run("builds the territory chain in order", func(t *testing.T) {
		vector, err := NewAttackVector("10:3,2,99", 10, []int{3, 2, 99})

		require.NoError(t, err)
		require.Equal(t, "10:3,2,99", vector.Name)
		require.Equal(t, 10, vector.FrontUnits)
		require.Equal(t, []Territory{{Units: 3}, {Units: 2}, {Units: 99}}, vector.Territories)
	})

	t.Run("rejects a front below one unit", func(t *testing.T) {
		_, err := NewAttackVector("0:3", 0, []int{3})
		require.Error(t, err)
	})

	t.Run("rejects an empty territory chain", func(t *testing.T) {
		_, err := NewAttackVector("5:", 5, nil)
		require.Error(t, err)
	})

	t.Run("rejects a negative territory count", func(t *testing.T) {
		_, err := NewAttackVector("5:3,-1", 5, []int{3, -1})
		require.Error(t, err)
	})

	t.Run("rejects a chain beyond the limit", func(t *testing.T) {
		units := make([]int, MaxTerritoryChain+1)
		for i := range units {
			units[i] = 1
		}

		_, err := NewAttackVector("too long", 5, units)
		require.Error(t, err)
	})
}
