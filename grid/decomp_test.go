package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeRejectsNonCubes(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 6, 7, 9, 10, 16, 25, 26, 28, 100} {
		_, err := Decompose(n, 0)
		assert.Error(t, err, "numRanks=%d", n)
	}
	for _, n := range []int{1, 8, 27, 64, 125, 216, 343, 512, 729, 1000} {
		_, err := Decompose(n, 0)
		assert.NoError(t, err, "numRanks=%d", n)
	}
}

func TestDecomposeRejectsBadRank(t *testing.T) {
	_, err := Decompose(8, -1)
	assert.Error(t, err)
	_, err = Decompose(8, 8)
	assert.Error(t, err)
	_, err = Decompose(0, 0)
	assert.Error(t, err)
}

func TestDecomposeSingleRank(t *testing.T) {
	d, err := Decompose(1, 0)
	require.NoError(t, err)
	assert.Equal(t, &Decomposition{Col: 0, Row: 0, Plane: 0, Side: 1}, d)
	assert.True(t, d.AtOrigin())
	assert.Equal(t, 0, d.Rank())
}

func TestDecomposeCoversGridExactly(t *testing.T) {
	for _, numRanks := range []int{1, 8, 27, 64, 125} {
		seen := make(map[[3]int]bool)
		var side int
		for rank := 0; rank < numRanks; rank++ {
			d, err := Decompose(numRanks, rank)
			require.NoError(t, err)
			side = d.Side
			assert.True(t, d.Col >= 0 && d.Col < side)
			assert.True(t, d.Row >= 0 && d.Row < side)
			assert.True(t, d.Plane >= 0 && d.Plane < side)
			key := [3]int{d.Col, d.Row, d.Plane}
			assert.False(t, seen[key], "duplicate coordinate %v at rank %d", key, rank)
			seen[key] = true
			assert.Equal(t, rank, d.Rank())
		}
		assert.Equal(t, side*side*side, len(seen))
	}
}

func TestDecomposeOriginOwner(t *testing.T) {
	origins := 0
	for rank := 0; rank < 27; rank++ {
		d, err := Decompose(27, rank)
		require.NoError(t, err)
		if d.AtOrigin() {
			origins++
			assert.Equal(t, 0, rank)
		}
	}
	assert.Equal(t, 1, origins)
}
