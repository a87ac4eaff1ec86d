package kinetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 4 from spec.md 8: two identical single-base complexes A and T;
// exterior tallies (1,0,0,0) and (0,0,0,1). Expected m = 1, join_flux =
// k_join.
func TestComputeJoinFlux_SymmetricTwoComplexJoin(t *testing.T) {
	em := fixedEnergyModel{join: 3}
	en := newTestEnsemble(em)
	en.Add(&mockComplex{strandIDs: []int{1}, exterior: ExteriorBases{A: 1}})
	en.Add(&mockComplex{strandIDs: []int{2}, exterior: ExteriorBases{T: 1}})
	en.Initialize()

	flux := en.computeJoinFlux()
	assert.Equal(t, 3.0, flux)
}

func TestComputeJoinFlux_SingleEntryIsZero(t *testing.T) {
	em := fixedEnergyModel{join: 10}
	en := newTestEnsemble(em)
	en.Add(&mockComplex{strandIDs: []int{1}, exterior: ExteriorBases{A: 5, T: 5}})
	en.Initialize()

	assert.Equal(t, 0.0, en.computeJoinFlux())
}

// Join symmetry invariant (spec.md 8): the pass-2 combinatorial count
// equals half the sum over all ordered pairs i != j of pair_count(i,j).
func TestComputeJoinFlux_MatchesPairwiseSum(t *testing.T) {
	em := fixedEnergyModel{join: 1}
	en := newTestEnsemble(em)
	tallies := []ExteriorBases{
		{A: 2, C: 1, G: 0, T: 3},
		{A: 1, C: 2, G: 2, T: 0},
		{A: 0, C: 1, G: 3, T: 1},
	}
	for i, tb := range tallies {
		en.Add(&mockComplex{strandIDs: []int{i + 1}, exterior: tb})
	}
	en.Initialize()

	got := en.computeJoinFlux()

	pairCount := func(a, b ExteriorBases) int {
		return a.A*b.T + a.T*b.A + a.G*b.C + a.C*b.G
	}
	sum := 0
	for i := range tallies {
		for j := range tallies {
			if i == j {
				continue
			}
			sum += pairCount(tallies[i], tallies[j])
		}
	}
	want := float64(sum/2) * 1
	assert.Equal(t, want, got)
}

// Resolving a join must deterministically pick the two complexes and base
// offsets implied by int_choice, given the same ensemble order.
func TestDoJoin_ResolvesDeterministicPartner(t *testing.T) {
	em := fixedEnergyModel{join: 1}
	en := newTestEnsemble(em)

	first := &mockComplex{strandIDs: []int{1}, exterior: ExteriorBases{T: 2}}
	second := &mockComplex{strandIDs: []int{2}, exterior: ExteriorBases{A: 3}}
	en.Add(second) // head insertion: `first`, added last, ends up at the head
	en.Add(first)
	en.Initialize()

	var gotComplexes [2]Complex
	var gotTypes [2]int
	var gotIndex [2]int
	en.resolver = func(complexes [2]Complex, types [2]int, index [2]int) (Complex, Complex) {
		gotComplexes = complexes
		gotTypes = types
		gotIndex = index
		return complexes[0], complexes[1]
	}

	total := en.TotalFlux()
	require.Greater(t, total, 0.0)

	// choice=0 must land in the first window of the first channel tested:
	// first entry in list order is `first` (added last, at head) which has
	// T bases; channel 0 is A(later)xT(own).
	en.doJoin(0)

	assert.Same(t, first, gotComplexes[0])
	assert.Same(t, second, gotComplexes[1])
	assert.Equal(t, [2]int{4, 1}, gotTypes)
	assert.Equal(t, [2]int{0, 0}, gotIndex)
	assert.Equal(t, 1, en.Count(), "a join collapses two entries into one")
}
