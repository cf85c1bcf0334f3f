package domain

import "github.com/notargets/gohydro/comm"

// setupCommBuffers decides which of the 26 neighbor directions are live for
// this subdomain and sizes the halo workspace to the worst-case message set.
func (d *Domain) setupCommBuffers(edgeNodes int) {
	// allocate a buffer large enough for nodal ghost data
	maxEdgeSize := d.SizeX
	if d.SizeY > maxEdgeSize {
		maxEdgeSize = d.SizeY
	}
	if d.SizeZ > maxEdgeSize {
		maxEdgeSize = d.SizeZ
	}
	maxEdgeSize++
	d.MaxPlaneSize = comm.CacheAlign(maxEdgeSize * maxEdgeSize)
	d.MaxEdgeSize = comm.CacheAlign(maxEdgeSize)

	// a face direction is active unless this rank sits at the grid extreme
	// on that axis
	d.RowMin = d.RowLoc != 0
	d.RowMax = d.RowLoc != d.Side-1
	d.ColMin = d.ColLoc != 0
	d.ColMax = d.ColLoc != d.Side-1
	d.PlaneMin = d.PlaneLoc != 0
	d.PlaneMax = d.PlaneLoc != d.Side-1

	if d.NumRanks > 1 {
		comBufSize := 0
		for _, dir := range comm.Directions() {
			if !d.DirActive(dir) {
				continue
			}
			switch dir.Kind() {
			case comm.Face:
				comBufSize += d.MaxPlaneSize * comm.MaxFieldsPerComm
			case comm.Edge:
				comBufSize += d.MaxEdgeSize * comm.MaxFieldsPerComm
			case comm.Corner:
				// each corner buffer occupies its own cache line to keep
				// neighbor completions from false sharing
				comBufSize += comm.CacheCoherencePad
			}
		}
		// make zero-fills, so a receive that lands before the first send is
		// posted can never surface junk into the arithmetic
		d.CommDataSend = make([]float64, comBufSize)
		d.CommDataRecv = make([]float64, comBufSize)
	}

	// Boundary nodesets for the symmetry planes this rank may own
	if d.ColLoc == 0 {
		d.SymmX = make([]int, edgeNodes*edgeNodes)
	}
	if d.RowLoc == 0 {
		d.SymmY = make([]int, edgeNodes*edgeNodes)
	}
	if d.PlaneLoc == 0 {
		d.SymmZ = make([]int, edgeNodes*edgeNodes)
	}
}

// DirActive reports whether a neighbor exists in the given direction, i.e.
// every axis the direction steps along has its min/max face flag set.
func (d *Domain) DirActive(dir comm.Direction) bool {
	switch {
	case dir.DCol == -1 && !d.ColMin:
		return false
	case dir.DCol == 1 && !d.ColMax:
		return false
	case dir.DRow == -1 && !d.RowMin:
		return false
	case dir.DRow == 1 && !d.RowMax:
		return false
	case dir.DPlane == -1 && !d.PlaneMin:
		return false
	case dir.DPlane == 1 && !d.PlaneMax:
		return false
	}
	return true
}

// CommBufferCapacity is the scalar capacity of each halo workspace.
func (d *Domain) CommBufferCapacity() int {
	return len(d.CommDataSend)
}
