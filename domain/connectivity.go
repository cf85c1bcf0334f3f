package domain

// setupElementConnectivities links every element to its six face neighbors
// within the local subdomain: stride 1 along xi, edgeElems along eta, and
// edgeElems^2 along zeta. Elements on a local axis boundary self-reference
// as a placeholder until boundary classification overwrites the links that
// actually cross rank or global boundaries.
func (d *Domain) setupElementConnectivities(edgeElems int) {
	d.Lxim[0] = 0
	for i := 1; i < d.NumElems; i++ {
		d.Lxim[i] = i - 1
		d.Lxip[i-1] = i
	}
	d.Lxip[d.NumElems-1] = d.NumElems - 1

	for i := 0; i < edgeElems; i++ {
		d.Letam[i] = i
		d.Letap[d.NumElems-edgeElems+i] = d.NumElems - edgeElems + i
	}
	for i := edgeElems; i < d.NumElems; i++ {
		d.Letam[i] = i - edgeElems
		d.Letap[i-edgeElems] = i
	}

	for i := 0; i < edgeElems*edgeElems; i++ {
		d.Lzetam[i] = i
		d.Lzetap[d.NumElems-edgeElems*edgeElems+i] = d.NumElems - edgeElems*edgeElems + i
	}
	for i := edgeElems * edgeElems; i < d.NumElems; i++ {
		d.Lzetam[i] = i - edgeElems*edgeElems
		d.Lzetap[i-edgeElems*edgeElems] = i
	}
}

// setupBoundaryConditions classifies the six outer faces of the subdomain.
// A rank at the global extreme on an axis keeps the placeholder link and
// gets a SYMM (low side) or FREE (high side) flag; an interior rank boundary
// gets a COMM flag and its link repointed into the ghost index space above
// NumElems. Ghost regions are claimed in a fixed direction order so distinct
// directions never overlap.
func (d *Domain) setupBoundaryConditions(edgeElems int) {
	for i := range d.ElemBC {
		d.ElemBC[i] = 0
	}

	// ghost region base per direction: planeMin, planeMax, rowMin, rowMax,
	// colMin, colMax, skipping inactive directions
	const unset = -(1 << 30)
	ghostIdx := [6]int{unset, unset, unset, unset, unset, unset}
	pidx := d.NumElems
	if d.PlaneMin {
		ghostIdx[0] = pidx
		pidx += d.SizeX * d.SizeY
	}
	if d.PlaneMax {
		ghostIdx[1] = pidx
		pidx += d.SizeX * d.SizeY
	}
	if d.RowMin {
		ghostIdx[2] = pidx
		pidx += d.SizeX * d.SizeZ
	}
	if d.RowMax {
		ghostIdx[3] = pidx
		pidx += d.SizeX * d.SizeZ
	}
	if d.ColMin {
		ghostIdx[4] = pidx
		pidx += d.SizeY * d.SizeZ
	}
	if d.ColMax {
		ghostIdx[5] = pidx
	}

	numElems := d.NumElems
	for i := 0; i < edgeElems; i++ {
		planeInc := i * edgeElems * edgeElems
		rowInc := i * edgeElems
		for j := 0; j < edgeElems; j++ {
			if d.PlaneLoc == 0 {
				d.ElemBC[rowInc+j] |= ZetaMSymm
			} else {
				d.ElemBC[rowInc+j] |= ZetaMComm
				d.Lzetam[rowInc+j] = ghostIdx[0] + rowInc + j
			}

			if d.PlaneLoc == d.Side-1 {
				d.ElemBC[rowInc+j+numElems-edgeElems*edgeElems] |= ZetaPFree
			} else {
				d.ElemBC[rowInc+j+numElems-edgeElems*edgeElems] |= ZetaPComm
				d.Lzetap[rowInc+j+numElems-edgeElems*edgeElems] = ghostIdx[1] + rowInc + j
			}

			if d.RowLoc == 0 {
				d.ElemBC[planeInc+j] |= EtaMSymm
			} else {
				d.ElemBC[planeInc+j] |= EtaMComm
				d.Letam[planeInc+j] = ghostIdx[2] + rowInc + j
			}

			if d.RowLoc == d.Side-1 {
				d.ElemBC[planeInc+j+edgeElems*edgeElems-edgeElems] |= EtaPFree
			} else {
				d.ElemBC[planeInc+j+edgeElems*edgeElems-edgeElems] |= EtaPComm
				d.Letap[planeInc+j+edgeElems*edgeElems-edgeElems] = ghostIdx[3] + rowInc + j
			}

			if d.ColLoc == 0 {
				d.ElemBC[planeInc+j*edgeElems] |= XiMSymm
			} else {
				d.ElemBC[planeInc+j*edgeElems] |= XiMComm
				d.Lxim[planeInc+j*edgeElems] = ghostIdx[4] + rowInc + j
			}

			if d.ColLoc == d.Side-1 {
				d.ElemBC[planeInc+j*edgeElems+edgeElems-1] |= XiPFree
			} else {
				d.ElemBC[planeInc+j*edgeElems+edgeElems-1] |= XiPComm
				d.Lxip[planeInc+j*edgeElems+edgeElems-1] = ghostIdx[5] + rowInc + j
			}
		}
	}
}
