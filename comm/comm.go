// Package comm defines the halo exchange contract that domain construction
// produces and an external transport layer consumes: message type tags, the
// 26 neighbor directions of the cube process grid, buffer alignment
// constants, and the send/receive-by-tag transport interface. No data
// movement happens here.
package comm

import "fmt"

// Message type tags. A halo exchange is a size-matched send/receive pair
// keyed by (neighbor rank, message type).
const (
	MsgComm       = 1024 // nodal force/mass sums
	MsgSyncPosVel = 2048 // position and velocity sync
	MsgMonoQ      = 3072 // monotonic q gradient exchange
)

const (
	// RealBytes is the width of one scalar on the wire. Domain field arrays
	// are float64 throughout.
	RealBytes = 8

	// MaxFieldsPerComm is the largest number of scalar fields bundled into a
	// single message.
	MaxFieldsPerComm = 6

	// CacheCoherencePad assumes 128 byte coherence, measured in scalars.
	CacheCoherencePad = 128 / RealBytes
)

// CacheAlign rounds n up to the cache coherence boundary.
func CacheAlign(n int) int {
	return (n + CacheCoherencePad - 1) &^ (CacheCoherencePad - 1)
}

// ValidateStaticConfig checks the buffer configuration invariants once at
// startup. These were compile-time checks in codes that template the scalar
// type; here they guard against edits to the constants above.
func ValidateStaticConfig() error {
	if RealBytes != 4 && RealBytes != 8 {
		return fmt.Errorf("transport only supports 4 or 8 byte scalars, got %d", RealBytes)
	}
	if MaxFieldsPerComm > CacheCoherencePad {
		return fmt.Errorf("corner comm buffers too small: %d fields exceed pad of %d scalars",
			MaxFieldsPerComm, CacheCoherencePad)
	}
	return nil
}

// Transport is implemented by the external exchange layer. Failure of either
// primitive is fatal to the run.
type Transport interface {
	Send(destRank, tag int, data []float64) error
	Recv(srcRank, tag int, data []float64) error
}

// Direction is a neighbor offset on the process grid, each component in
// {-1, 0, 1}, never all zero.
type Direction struct {
	DCol, DRow, DPlane int
}

// Kind classifies a direction by how many axes it spans.
type Kind uint8

const (
	Face Kind = iota + 1
	Edge
	Corner
)

func (d Direction) Kind() Kind {
	n := 0
	if d.DCol != 0 {
		n++
	}
	if d.DRow != 0 {
		n++
	}
	if d.DPlane != 0 {
		n++
	}
	return Kind(n)
}

// Directions enumerates all 26 neighbor directions: 6 faces, then 12 edges,
// then 8 corners.
func Directions() (dirs []Direction) {
	dirs = make([]Direction, 0, 26)
	for _, kind := range []Kind{Face, Edge, Corner} {
		for dp := -1; dp <= 1; dp++ {
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					d := Direction{dc, dr, dp}
					if d.Kind() == kind && kind != 0 {
						dirs = append(dirs, d)
					}
				}
			}
		}
	}
	return
}

// Rank converts a grid coordinate to its linear rank, the inverse of the
// mixed-radix decomposition used at startup.
func Rank(col, row, plane, side int) int {
	return plane*side*side + row*side + col
}

// NeighborRanks returns the rank of each neighbor that exists for the given
// coordinate, keyed by direction. Directions that step off the global grid
// are absent.
func NeighborRanks(col, row, plane, side int) map[Direction]int {
	nbrs := make(map[Direction]int)
	for _, d := range Directions() {
		c, r, p := col+d.DCol, row+d.DRow, plane+d.DPlane
		if c < 0 || c >= side || r < 0 || r >= side || p < 0 || p >= side {
			continue
		}
		nbrs[d] = Rank(c, r, p, side)
	}
	return nbrs
}

// MessageSize returns the number of node slots transferred in one direction
// for a subdomain with dx*dy*dz node lattice dimensions. Face messages carry
// a full plane of nodes, edge messages a line, corner messages one node.
// Multiply by the per-message field count for the scalar total.
func (d Direction) MessageSize(dx, dy, dz int) int {
	switch d.Kind() {
	case Face:
		switch {
		case d.DPlane != 0:
			return dx * dy
		case d.DRow != 0:
			return dx * dz
		default:
			return dy * dz
		}
	case Edge:
		switch {
		case d.DPlane == 0:
			return dz
		case d.DRow == 0:
			return dy
		default:
			return dx
		}
	default:
		return 1
	}
}
