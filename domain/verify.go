package domain

import (
	"fmt"
	"math"
)

// Verify performs consistency checks over the constructed topology. Every
// simulation cycle trusts these structures, so the CLI runs this once after
// construction and treats any failure as fatal.
func (d *Domain) Verify() error {
	if d.NumElems != d.SizeX*d.SizeY*d.SizeZ {
		return fmt.Errorf("element count %d does not match %dx%dx%d subdomain",
			d.NumElems, d.SizeX, d.SizeY, d.SizeZ)
	}
	if d.NumNodes != (d.SizeX+1)*(d.SizeY+1)*(d.SizeZ+1) {
		return fmt.Errorf("node count %d does not match element count %d", d.NumNodes, d.NumElems)
	}

	if err := d.verifyConnectivity(); err != nil {
		return err
	}
	if err := d.verifyRegions(); err != nil {
		return err
	}
	if err := d.verifyBoundaries(); err != nil {
		return err
	}
	if err := d.verifySymmetryPlanes(); err != nil {
		return err
	}

	// Each element splits its whole reference volume across its 8 nodes, so
	// the nodal total must reproduce the element total
	totalV, totalM := d.TotalReferenceVolume(), d.TotalNodalMass()
	if diff := math.Abs(totalM - totalV); diff > 1e-10*math.Abs(totalV)+1e-15 {
		return fmt.Errorf("nodal mass %g does not conserve reference volume %g", totalM, totalV)
	}
	return nil
}

func (d *Domain) verifyConnectivity() error {
	for i := 0; i < d.NumElems; i++ {
		var seen [8]int
		for j, n := range d.ElemNodes(i) {
			if n < 0 || n >= d.NumNodes {
				return fmt.Errorf("elem %d corner %d: node id %d out of range", i, j, n)
			}
			seen[j] = n
			for k := 0; k < j; k++ {
				if seen[k] == n {
					return fmt.Errorf("elem %d: duplicate node id %d", i, n)
				}
			}
		}
	}
	return nil
}

func (d *Domain) verifyRegions() error {
	assigned := make([]int, d.NumElems)
	total := 0
	for r := 0; r < d.NumRegions; r++ {
		if len(d.RegElemList[r]) != d.RegElemSize[r] {
			return fmt.Errorf("region %d: set length %d does not match size %d",
				r, len(d.RegElemList[r]), d.RegElemSize[r])
		}
		total += d.RegElemSize[r]
		for _, el := range d.RegElemList[r] {
			if el < 0 || el >= d.NumElems {
				return fmt.Errorf("region %d: element id %d out of range", r, el)
			}
			assigned[el]++
			if d.RegNumList[el] != r+1 {
				return fmt.Errorf("element %d in region set %d but carries material %d",
					el, r, d.RegNumList[el])
			}
		}
	}
	if total != d.NumElems {
		return fmt.Errorf("region sets cover %d of %d elements", total, d.NumElems)
	}
	for el, n := range assigned {
		if n != 1 {
			return fmt.Errorf("element %d appears in %d region sets", el, n)
		}
	}
	return nil
}

// faceSpec ties one of the six faces to its mask bits, link array, and ghost
// region, in the fixed ghost allocation order.
type faceSpec struct {
	name             string
	symm, free, comm int
	links            []int
	ghostSize        int
}

func (d *Domain) faceSpecs() []faceSpec {
	return []faceSpec{
		{"zetaM", ZetaMSymm, ZetaMFree, ZetaMComm, d.Lzetam, d.SizeX * d.SizeY},
		{"zetaP", ZetaPSymm, ZetaPFree, ZetaPComm, d.Lzetap, d.SizeX * d.SizeY},
		{"etaM", EtaMSymm, EtaMFree, EtaMComm, d.Letam, d.SizeX * d.SizeZ},
		{"etaP", EtaPSymm, EtaPFree, EtaPComm, d.Letap, d.SizeX * d.SizeZ},
		{"xiM", XiMSymm, XiMFree, XiMComm, d.Lxim, d.SizeY * d.SizeZ},
		{"xiP", XiPSymm, XiPFree, XiPComm, d.Lxip, d.SizeY * d.SizeZ},
	}
}

func (d *Domain) verifyBoundaries() error {
	specs := d.faceSpecs()

	// ghost bases in allocation order, sharing no indices between directions
	base := d.NumElems
	ghostBase := make([]int, len(specs))
	commActive := []bool{d.PlaneMin, d.PlaneMax, d.RowMin, d.RowMax, d.ColMin, d.ColMax}
	for f, spec := range specs {
		ghostBase[f] = -1
		if commActive[f] {
			ghostBase[f] = base
			base += spec.ghostSize
		}
	}

	for i := 0; i < d.NumElems; i++ {
		for f, spec := range specs {
			bits := 0
			if d.ElemBC[i]&spec.symm != 0 {
				bits++
			}
			if d.ElemBC[i]&spec.free != 0 {
				bits++
			}
			if d.ElemBC[i]&spec.comm != 0 {
				bits++
			}
			if bits > 1 {
				return fmt.Errorf("elem %d face %s: %d boundary states set", i, spec.name, bits)
			}
			link := spec.links[i]
			if d.ElemBC[i]&spec.comm != 0 {
				if ghostBase[f] == -1 {
					return fmt.Errorf("elem %d face %s: comm flag with inactive direction", i, spec.name)
				}
				if link < ghostBase[f] || link >= ghostBase[f]+spec.ghostSize {
					return fmt.Errorf("elem %d face %s: ghost link %d outside [%d,%d)",
						i, spec.name, link, ghostBase[f], ghostBase[f]+spec.ghostSize)
				}
			} else if link < 0 || link >= d.NumElems {
				return fmt.Errorf("elem %d face %s: local link %d out of range", i, spec.name, link)
			}
		}
	}
	return nil
}

func (d *Domain) verifySymmetryPlanes() error {
	edgeNodes := d.SizeX + 1
	check := func(name string, owned bool, set []int, coord []float64) error {
		if !owned {
			if len(set) != 0 {
				return fmt.Errorf("symmetry nodeset %s allocated off the global boundary", name)
			}
			return nil
		}
		if len(set) != edgeNodes*edgeNodes {
			return fmt.Errorf("symmetry nodeset %s has %d nodes, want %d",
				name, len(set), edgeNodes*edgeNodes)
		}
		for _, n := range set {
			if n < 0 || n >= d.NumNodes {
				return fmt.Errorf("symmetry nodeset %s: node id %d out of range", name, n)
			}
			if coord[n] != coord[set[0]] {
				return fmt.Errorf("symmetry nodeset %s: node %d off the plane", name, n)
			}
		}
		return nil
	}
	if err := check("X", d.ColLoc == 0, d.SymmX, d.X); err != nil {
		return err
	}
	if err := check("Y", d.RowLoc == 0, d.SymmY, d.Y); err != nil {
		return err
	}
	return check("Z", d.PlaneLoc == 0, d.SymmZ, d.Z)
}
