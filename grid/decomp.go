// Package grid maps ranks onto the cube process grid before any domain is
// constructed.
package grid

import (
	"fmt"
	"math"

	"github.com/notargets/gohydro/comm"
	"github.com/notargets/gohydro/utils"
)

// Decomposition locates one rank within the S x S x S process grid.
type Decomposition struct {
	Col, Row, Plane int
	Side            int
}

// Decompose computes this rank's grid coordinate. The rank count must be a
// perfect cube; anything else invalidates the whole topology, so the caller
// is expected to abort the run on error. The static transport configuration
// is validated here as well, once, before any buffers are sized from it.
func Decompose(numRanks, myRank int) (*Decomposition, error) {
	if numRanks < 1 || myRank < 0 || myRank >= numRanks {
		return nil, fmt.Errorf("rank %d out of range for %d ranks", myRank, numRanks)
	}
	side := int(math.Cbrt(float64(numRanks)) + 0.5)
	if side*side*side != numRanks {
		return nil, fmt.Errorf(
			"number of ranks must be a cube of an integer (1, 8, 27, ...), got %d", numRanks)
	}
	if err := comm.ValidateStaticConfig(); err != nil {
		return nil, err
	}

	// Ranks own contiguous runs of logical domains, remainder domains going
	// to the lowest ranks first. With a cube rank count every rank owns
	// exactly one domain and myDom == myRank, but the general mapping is
	// kept for layouts with more domains than ranks.
	numDomains := side * side * side
	pm := utils.NewPartitionMap(numRanks, numDomains)
	myDom, _ := pm.GetBucketRange(myRank)

	return &Decomposition{
		Col:   myDom % side,
		Row:   (myDom / side) % side,
		Plane: myDom / (side * side),
		Side:  side,
	}, nil
}

// Rank is the inverse mapping, used to address neighbors.
func (d *Decomposition) Rank() int {
	return comm.Rank(d.Col, d.Row, d.Plane, d.Side)
}

// AtOrigin reports whether this rank owns the global origin corner of the
// mesh, where the initial energy deposit lands.
func (d *Decomposition) AtOrigin() bool {
	return d.Col+d.Row+d.Plane == 0
}
