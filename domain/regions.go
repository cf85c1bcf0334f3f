package domain

import (
	"log"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// createRegionIndexSets assigns every element a material number in
// [1, numRegions] and converts the flat assignment into one index set per
// region. The random stream is passed in seeded from this rank, so the
// layout is deterministic per rank and different across ranks.
//
// The run-length breakpoints below are empirically tuned against the
// reference benchmark; they are load-imbalance calibration, not physics, and
// must not be re-derived.
func (d *Domain) createRegionIndexSets(rng *rand.Rand, numRegions, balance int) {
	d.NumRegions = numRegions
	d.RegElemSize = make([]int, numRegions)
	d.RegElemList = make([][]int, numRegions)

	nextIndex := 0
	if numRegions == 1 {
		// if we only have one region just fill it
		for nextIndex < d.NumElems {
			d.RegNumList[nextIndex] = 1
			nextIndex++
		}
	} else {
		lastReg := -1
		// Relative region weights: region i carries weight (i+1)^balance,
		// binned cumulatively so a uniform draw lands in region i with
		// chance weight(i)/total
		costDenominator := 0
		regBinEnd := make([]int, numRegions)
		for i := 0; i < numRegions; i++ {
			costDenominator += int(math.Pow(float64(i+1), float64(balance)))
			regBinEnd[i] = costDenominator
		}

		pickRegion := func() int {
			regionVar := rng.Intn(costDenominator)
			i := 0
			for regionVar >= regBinEnd[i] {
				i++
			}
			// rotate the regions based on rank so each domain has a
			// different region with the highest representation
			return (i+d.Rank())%numRegions + 1
		}

		for nextIndex < d.NumElems {
			regionNum := pickRegion()
			// make sure we don't pick the same region twice in a row
			for regionNum == lastReg {
				regionNum = pickRegion()
			}
			// Pick the run length: heavily skewed toward short runs, with a
			// decreasing-probability tail out to ~2048 elements
			var elements int
			binSize := rng.Intn(1000)
			switch {
			case binSize < 773:
				elements = rng.Intn(15) + 1
			case binSize < 937:
				elements = rng.Intn(16) + 16
			case binSize < 970:
				elements = rng.Intn(32) + 32
			case binSize < 974:
				elements = rng.Intn(64) + 64
			case binSize < 978:
				elements = rng.Intn(128) + 128
			case binSize < 981:
				elements = rng.Intn(256) + 256
			default:
				elements = rng.Intn(1537) + 512
			}
			runto := elements + nextIndex
			// Store the elements. If we hit the end before we run out of
			// elements then just stop.
			for nextIndex < runto && nextIndex < d.NumElems {
				d.RegNumList[nextIndex] = regionNum
				nextIndex++
			}
			lastReg = regionNum
		}
	}

	// Convert the per-element material numbers to region index sets.
	// First, count the size of each region
	for i := 0; i < d.NumElems; i++ {
		r := d.RegNumList[i] - 1 // region index == regnum-1
		d.RegElemSize[r]++
	}
	// Second, allocate each region index set
	for i := 0; i < numRegions; i++ {
		d.RegElemList[i] = make([]int, d.RegElemSize[i])
		d.RegElemSize[i] = 0
	}
	// Third, fill index sets
	for i := 0; i < d.NumElems; i++ {
		r := d.RegNumList[i] - 1
		regndx := d.RegElemSize[r]
		d.RegElemSize[r]++
		d.RegElemList[r][regndx] = i
	}
}

// RegionCost is the synthetic per-element work multiplier for region r
// (0-indexed). The cheapest half of the regions run once; the top ~5% are an
// order of magnitude more expensive, emulating heterogeneous materials.
func (d *Domain) RegionCost(r int) int {
	switch {
	case r < d.NumRegions/2:
		return 1
	case r < d.NumRegions-(d.NumRegions+15)/20:
		return 1 + d.Cost
	default:
		return 10 * (1 + d.Cost)
	}
}

// ReportRegions logs the region decomposition and its load imbalance, the
// per-rank view of what the stochastic partition produced.
func (d *Domain) ReportRegions() {
	loads := make([]float64, d.NumRegions)
	var total float64
	for r := 0; r < d.NumRegions; r++ {
		loads[r] = float64(d.RegElemSize[r] * d.RegionCost(r))
		total += loads[r]
	}
	mean := stat.Mean(loads, nil)
	sigma := stat.StdDev(loads, nil)
	var maxLoad float64
	for _, l := range loads {
		if l > maxLoad {
			maxLoad = l
		}
	}
	imbalance := 0.0
	if mean > 0 {
		imbalance = maxLoad/mean - 1.0
	}

	log.Printf("Region decomposition, rank %d:", d.Rank())
	log.Printf("  Regions: %d, elements: %d, total load: %.0f", d.NumRegions, d.NumElems, total)
	log.Printf("  Load mean: %.1f, stddev: %.1f, imbalance: %.2f%%", mean, sigma, imbalance*100)
	for r := 0; r < d.NumRegions; r++ {
		log.Printf("  Region %d: %d elements, cost %d", r+1, d.RegElemSize[r], d.RegionCost(r))
	}
}
