package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionSetsPartitionElements(t *testing.T) {
	for _, numRegions := range []int{1, 2, 7, 11, 45} {
		d := buildDomain(t, 1, 0, 5, numRegions, 1, 1, 1)
		require.Equal(t, numRegions, d.NumRegions)

		seen := make([]bool, d.NumElems)
		total := 0
		for r := 0; r < numRegions; r++ {
			assert.Len(t, d.RegElemList[r], d.RegElemSize[r])
			total += d.RegElemSize[r]
			for _, el := range d.RegElemList[r] {
				require.False(t, seen[el], "element %d assigned twice", el)
				seen[el] = true
			}
		}
		assert.Equal(t, d.NumElems, total, "numRegions=%d", numRegions)
	}
}

func TestRegionMaterialNumbers(t *testing.T) {
	d := buildDomain(t, 1, 0, 4, 6, 1, 1, 1)
	for i, m := range d.RegNumList {
		assert.True(t, m >= 1 && m <= d.NumRegions, "element %d material %d", i, m)
	}
	// index sets record each element's position within its region
	for r := 0; r < d.NumRegions; r++ {
		for _, el := range d.RegElemList[r] {
			assert.Equal(t, r+1, d.RegNumList[el])
		}
	}
}

func TestRegionRunLengths(t *testing.T) {
	d := buildDomain(t, 1, 0, 8, 5, 1, 1, 1)
	// compress the assignment to runs: no run exceeds the distribution's
	// 2048 element ceiling, and the short-run bias produces many runs over
	// 512 elements
	runs := 0
	for i := 0; i < d.NumElems; {
		j := i
		for j < d.NumElems && d.RegNumList[j] == d.RegNumList[i] {
			j++
		}
		assert.LessOrEqual(t, j-i, 2048)
		runs++
		i = j
	}
	assert.Greater(t, runs, 10)
}

func TestRegionAssignmentDeterministicPerRank(t *testing.T) {
	a := buildDomain(t, 8, 3, 4, 6, 1, 1, 1)
	b := buildDomain(t, 8, 3, 4, 6, 1, 1, 1)
	assert.Equal(t, a.RegNumList, b.RegNumList)

	// a different rank draws from a different stream
	c := buildDomain(t, 8, 5, 4, 6, 1, 1, 1)
	assert.NotEqual(t, a.RegNumList, c.RegNumList)
}

func TestRegionBalanceSkew(t *testing.T) {
	// with a strong balance exponent the weight mass concentrates in a few
	// regions, so the largest region dwarfs the mean
	d := buildDomain(t, 1, 0, 8, 8, 4, 1, 1)
	maxSize, total := 0, 0
	for r := 0; r < d.NumRegions; r++ {
		total += d.RegElemSize[r]
		if d.RegElemSize[r] > maxSize {
			maxSize = d.RegElemSize[r]
		}
	}
	mean := float64(total) / float64(d.NumRegions)
	assert.Greater(t, float64(maxSize), 2*mean)
}

func TestRegionCostTiers(t *testing.T) {
	d := buildDomain(t, 1, 0, 2, 11, 1, 1, 1)
	assert.Equal(t, 1, d.RegionCost(0))
	assert.Equal(t, 1, d.RegionCost(4))
	assert.Equal(t, 1+d.Cost, d.RegionCost(5))
	assert.Equal(t, 10*(1+d.Cost), d.RegionCost(10))
}
