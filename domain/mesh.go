package domain

// buildMesh fills the (edgeNodes)^3 node coordinate lattice and embeds the
// hexahedral elements into it.
//
// Node spacing is deliberately nonuniform: each global edge element spans
// 1.125 geometric units, a convention of the reference geometry. Coordinates
// are recomputed from the global index at every step instead of accumulating
// a delta, which may accumulate roundoff.
func (d *Domain) buildMesh(nx, edgeNodes, edgeElems int) {
	meshEdgeElems := d.Side * nx

	// initialize nodal coordinates
	d.parallelFor(edgeNodes, func(lo, hi int) {
		for plane := lo; plane < hi; plane++ {
			tz := 1.125 * float64(d.PlaneLoc*nx+plane) / float64(meshEdgeElems)
			nidx := plane * edgeNodes * edgeNodes
			for row := 0; row < edgeNodes; row++ {
				ty := 1.125 * float64(d.RowLoc*nx+row) / float64(meshEdgeElems)
				for col := 0; col < edgeNodes; col++ {
					d.X[nidx] = 1.125 * float64(d.ColLoc*nx+col) / float64(meshEdgeElems)
					d.Y[nidx] = ty
					d.Z[nidx] = tz
					nidx++
				}
			}
		}
	})

	// embed hexahedral elements in the nodal point lattice. The corner
	// ordering fixes the sign convention of the volume formula downstream;
	// bottom face counterclockwise from the low corner, then the top face
	// one node plane up.
	d.parallelFor(edgeElems, func(lo, hi int) {
		for plane := lo; plane < hi; plane++ {
			zidx := plane * edgeElems * edgeElems
			for row := 0; row < edgeElems; row++ {
				nidx := plane*edgeNodes*edgeNodes + row*edgeNodes
				for col := 0; col < edgeElems; col++ {
					localNode := d.NodeList[8*zidx : 8*zidx+8]
					localNode[0] = nidx
					localNode[1] = nidx + 1
					localNode[2] = nidx + edgeNodes + 1
					localNode[3] = nidx + edgeNodes
					localNode[4] = nidx + edgeNodes*edgeNodes
					localNode[5] = nidx + edgeNodes*edgeNodes + 1
					localNode[6] = nidx + edgeNodes*edgeNodes + edgeNodes + 1
					localNode[7] = nidx + edgeNodes*edgeNodes + edgeNodes
					zidx++
					nidx++
				}
			}
		}
	})
}

// ElemNodes returns the 8 node ids of element i in corner order.
func (d *Domain) ElemNodes(i int) []int {
	return d.NodeList[8*i : 8*i+8]
}

// CollectElemNodes gathers the corner coordinates of element i.
func (d *Domain) CollectElemNodes(i int, x, y, z *[8]float64) {
	for lnode, gnode := range d.ElemNodes(i) {
		x[lnode] = d.X[gnode]
		y[lnode] = d.Y[gnode]
		z[lnode] = d.Z[gnode]
	}
}

// setupSymmetryPlanes records the nodes lying on each zero-coordinate global
// boundary plane this subdomain owns. The nodesets were allocated by the
// comm buffer setup only for axes where this rank sits at grid coordinate 0.
func (d *Domain) setupSymmetryPlanes(edgeNodes int) {
	nidx := 0
	for i := 0; i < edgeNodes; i++ {
		planeInc := i * edgeNodes * edgeNodes
		rowInc := i * edgeNodes
		for j := 0; j < edgeNodes; j++ {
			if d.PlaneLoc == 0 {
				d.SymmZ[nidx] = rowInc + j
			}
			if d.RowLoc == 0 {
				d.SymmY[nidx] = planeInc + j
			}
			if d.ColLoc == 0 {
				d.SymmX[nidx] = planeInc + j*edgeNodes
			}
			nidx++
		}
	}
}
