package domain

import "fmt"

// setupThreadSupport builds the node to element-corner reverse index, a CSR
// pair of offsets and a flat corner list. Threaded nodal accumulation walks
// this index to gather contributions from up to 8 touching elements per node
// instead of scatter-adding under contention.
func (d *Domain) setupThreadSupport() {
	nodeElemCount := make([]int, d.NumNodes)

	for i := 0; i < d.NumElems; i++ {
		for _, n := range d.ElemNodes(i) {
			nodeElemCount[n]++
		}
	}

	d.NodeElemStart = make([]int, d.NumNodes+1)
	for i := 1; i <= d.NumNodes; i++ {
		d.NodeElemStart[i] = d.NodeElemStart[i-1] + nodeElemCount[i-1]
	}

	d.NodeElemCornerList = make([]int, d.NodeElemStart[d.NumNodes])
	for i := range nodeElemCount {
		nodeElemCount[i] = 0
	}
	for i := 0; i < d.NumElems; i++ {
		for j, n := range d.ElemNodes(i) {
			offset := d.NodeElemStart[n] + nodeElemCount[n]
			d.NodeElemCornerList[offset] = i*8 + j
			nodeElemCount[n]++
		}
	}

	// Every cycle of every threaded run trusts this index, so a corrupt
	// entry is unrecoverable
	for i, clv := range d.NodeElemCornerList {
		if clv < 0 || clv >= d.NumElems*8 {
			panic(fmt.Sprintf(
				"node element corner list entry %d out of range: %d not in [0,%d)",
				i, clv, d.NumElems*8))
		}
	}
}

// NodeElemCount is the number of element corners touching node n.
func (d *Domain) NodeElemCount(n int) int {
	return d.NodeElemStart[n+1] - d.NodeElemStart[n]
}

// NodeElemCorners returns the packed corner ids (element*8 + corner) that
// reference node n.
func (d *Domain) NodeElemCorners(n int) []int {
	return d.NodeElemCornerList[d.NodeElemStart[n]:d.NodeElemStart[n+1]]
}
