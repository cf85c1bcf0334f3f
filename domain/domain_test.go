package domain

import (
	"math"
	"testing"

	"github.com/notargets/gohydro/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDomain(t *testing.T, numRanks, rank, nx, numRegions, balance, cost,
	numThreads int) *Domain {
	t.Helper()
	loc, err := grid.Decompose(numRanks, rank)
	require.NoError(t, err)
	d, err := NewDomain(numRanks, loc, nx, numRegions, balance, cost, numThreads)
	require.NoError(t, err)
	return d
}

func TestNewDomainRejectsBadArgs(t *testing.T) {
	loc, err := grid.Decompose(1, 0)
	require.NoError(t, err)
	_, err = NewDomain(1, loc, 0, 1, 1, 1, 1)
	assert.Error(t, err)
	_, err = NewDomain(1, loc, 2, 0, 1, 1, 1)
	assert.Error(t, err)
}

func TestDomainCounts(t *testing.T) {
	for nx := 1; nx <= 5; nx++ {
		d := buildDomain(t, 1, 0, nx, 1, 1, 1, 1)
		assert.Equal(t, nx*nx*nx, d.NumElems)
		assert.Equal(t, (nx+1)*(nx+1)*(nx+1), d.NumNodes)
		assert.NoError(t, d.Verify())
	}
}

func TestSingleElementDomain(t *testing.T) {
	d := buildDomain(t, 1, 0, 1, 1, 1, 1, 1)
	assert.Equal(t, 1, d.NumElems)
	assert.Equal(t, 8, d.NumNodes)

	// One rank means no halo exchange anywhere: every face is SYMM or FREE
	for _, spec := range d.faceSpecs() {
		assert.Zero(t, d.ElemBC[0]&spec.comm, "face %s marked COMM", spec.name)
		assert.NotZero(t, d.ElemBC[0]&(spec.symm|spec.free),
			"face %s carries no boundary state", spec.name)
		// placeholder links self-reference at the global boundary
		assert.Equal(t, 0, spec.links[0])
	}
	assert.Zero(t, d.CommBufferCapacity())

	require.Equal(t, 1, d.NumRegions)
	assert.Equal(t, []int{0}, d.RegElemList[0])

	assert.NoError(t, d.Verify())
}

func TestSmallDomainInitialState(t *testing.T) {
	d := buildDomain(t, 1, 0, 2, 1, 1, 1, 1)
	require.Equal(t, 8, d.NumElems)
	require.Equal(t, 27, d.NumNodes)

	// relative volume starts at unit value, every other element field at zero
	for i := 0; i < d.NumElems; i++ {
		assert.Equal(t, 1.0, d.V[i])
		assert.Zero(t, d.P[i])
		assert.Zero(t, d.Q[i])
		assert.Zero(t, d.SS[i])
		assert.NotZero(t, d.Volo[i])
		assert.NotZero(t, d.ElemMass[i])
	}
	for i := 0; i < d.NumNodes; i++ {
		assert.Zero(t, d.XD[i])
		assert.Zero(t, d.XDD[i])
		assert.Zero(t, d.FX[i])
		assert.NotZero(t, d.NodalMass[i])
	}

	// the origin rank takes the whole deposit in its first zone
	einit := InitialEnergy(2, 1)
	assert.InEpsilon(t, einit, d.E[0], 1e-12)
	for i := 1; i < d.NumElems; i++ {
		assert.Zero(t, d.E[i])
	}

	// initial timestep comes from the analytic CFL relation
	want := (0.5 * math.Cbrt(d.Volo[0])) / math.Sqrt(2.0*einit)
	assert.Equal(t, want, d.Deltatime)

	assert.NoError(t, d.Verify())
}

func TestTimestepDefaults(t *testing.T) {
	d := buildDomain(t, 1, 0, 2, 1, 1, 1, 1)
	assert.Negative(t, d.Dtfixed) // negative selects the courant condition
	assert.Equal(t, 1.0e-2, d.Stoptime)
	assert.Equal(t, 1.1, d.Deltatimemultlb)
	assert.Equal(t, 1.2, d.Deltatimemultub)
	assert.Equal(t, 1.0e+20, d.Dtcourant)
	assert.Equal(t, 1.0e+20, d.Dthydro)
	assert.Zero(t, d.Time)
	assert.Zero(t, d.Cycle)
	assert.Equal(t, 1.0, d.ReferenceDensity)
}

func TestMassConservation(t *testing.T) {
	for _, tc := range []struct{ numRanks, rank, nx int }{
		{1, 0, 1}, {1, 0, 4}, {8, 0, 2}, {8, 5, 3}, {27, 13, 2},
	} {
		d := buildDomain(t, tc.numRanks, tc.rank, tc.nx, 1, 1, 1, 1)
		assert.InEpsilon(t, d.TotalReferenceVolume(), d.TotalNodalMass(), 1e-12,
			"ranks=%d rank=%d nx=%d", tc.numRanks, tc.rank, tc.nx)
	}
}

func TestEightRankOriginCorner(t *testing.T) {
	d := buildDomain(t, 8, 0, 2, 1, 1, 1, 1)

	// rank 0 owns all three global symmetry planes
	assert.NotEmpty(t, d.SymmX)
	assert.NotEmpty(t, d.SymmY)
	assert.NotEmpty(t, d.SymmZ)

	// the deposit lands here
	assert.Equal(t, InitialEnergy(2, 2), d.E[0])

	// high faces are interior rank boundaries now, not free surfaces
	last := d.NumElems - 1
	assert.NotZero(t, d.ElemBC[last]&ZetaPComm)
	assert.NotZero(t, d.ElemBC[last]&EtaPComm)
	assert.NotZero(t, d.ElemBC[last]&XiPComm)
	assert.GreaterOrEqual(t, d.Lzetap[last], d.NumElems)

	assert.Positive(t, d.CommBufferCapacity())
	assert.Equal(t, len(d.CommDataSend), len(d.CommDataRecv))
	assert.NoError(t, d.Verify())
}

func TestEightRankFarCorner(t *testing.T) {
	d := buildDomain(t, 8, 7, 2, 1, 1, 1, 1)

	// rank 7 at (1,1,1) touches no global symmetry plane
	assert.Empty(t, d.SymmX)
	assert.Empty(t, d.SymmY)
	assert.Empty(t, d.SymmZ)
	assert.Zero(t, d.E[0])

	// low faces exchange halos, high faces are free surfaces
	assert.NotZero(t, d.ElemBC[0]&ZetaMComm)
	assert.NotZero(t, d.ElemBC[0]&EtaMComm)
	assert.NotZero(t, d.ElemBC[0]&XiMComm)
	assert.GreaterOrEqual(t, d.Lzetam[0], d.NumElems)
	last := d.NumElems - 1
	assert.NotZero(t, d.ElemBC[last]&ZetaPFree)
	assert.NotZero(t, d.ElemBC[last]&EtaPFree)
	assert.NotZero(t, d.ElemBC[last]&XiPFree)

	assert.NoError(t, d.Verify())
}

func TestAllRanksVerify(t *testing.T) {
	for _, numRanks := range []int{1, 8, 27} {
		for rank := 0; rank < numRanks; rank++ {
			d := buildDomain(t, numRanks, rank, 3, 4, 1, 1, 1)
			assert.NoError(t, d.Verify(), "ranks=%d rank=%d", numRanks, rank)
		}
	}
}

func TestThreadedConstructionMatchesSerial(t *testing.T) {
	serial := buildDomain(t, 8, 3, 4, 5, 1, 1, 1)
	threaded := buildDomain(t, 8, 3, 4, 5, 1, 1, 4)

	assert.Equal(t, serial.X, threaded.X)
	assert.Equal(t, serial.Y, threaded.Y)
	assert.Equal(t, serial.Z, threaded.Z)
	assert.Equal(t, serial.NodeList, threaded.NodeList)
	assert.Equal(t, serial.RegNumList, threaded.RegNumList)
	assert.Equal(t, serial.ElemBC, threaded.ElemBC)
	assert.Equal(t, serial.Volo, threaded.Volo)

	// gather and scatter accumulate the same per-node terms in a different
	// order, so compare to roundoff
	require.Equal(t, len(serial.NodalMass), len(threaded.NodalMass))
	for i := range serial.NodalMass {
		assert.InDelta(t, serial.NodalMass[i], threaded.NodalMass[i], 1e-12)
	}

	assert.NoError(t, threaded.Verify())
}

func TestMeshGeometry(t *testing.T) {
	// nodes span 1.125 units per global edge element, offset by grid position
	d := buildDomain(t, 8, 7, 2, 1, 1, 1, 1)
	edgeNodes := 3
	// first node of the (1,1,1) subdomain sits at the midpoint of the
	// global box
	assert.InDelta(t, 1.125/2, d.X[0], 1e-14)
	assert.InDelta(t, 1.125/2, d.Y[0], 1e-14)
	assert.InDelta(t, 1.125/2, d.Z[0], 1e-14)
	// last node reaches the far corner of the global box
	lastNode := edgeNodes*edgeNodes*edgeNodes - 1
	assert.InDelta(t, 1.125, d.X[lastNode], 1e-14)
	assert.InDelta(t, 1.125, d.Y[lastNode], 1e-14)
	assert.InDelta(t, 1.125, d.Z[lastNode], 1e-14)
}
