package nucleic

import (
	"testing"

	"github.com/daniacca/nastrand/internal/kinetics"
)

// Resolve must merge two single strands into one two-strand complex whose
// strand-id list is the concatenation of the components', and that merged
// complex's sole Open move must dissociate it back into exactly the two
// complexes it was built from.
func TestResolve_JoinThenDissociateRoundTrip(t *testing.T) {
	em := testEnergyModel()
	a := NewSingleStrand(1, "a", "AAAA", em)
	b := NewSingleStrand(2, "b", "TTTT", em)
	a.GenerateLoops()
	a.DisplayMoves()
	b.GenerateLoops()
	b.DisplayMoves()

	mergedC, deletedC := Resolve([2]kinetics.Complex{a, b}, [2]int{4, 1}, [2]int{0, 0})
	merged := mergedC.(*StrandComplex)

	if merged.StrandCount() != 2 {
		t.Fatalf("StrandCount() = %d, want 2 after a join", merged.StrandCount())
	}
	if !merged.CheckIDList([]int{1, 2}) {
		t.Fatalf("merged complex strand-id list must be {1, 2}")
	}
	if deletedC != kinetics.Complex(b) {
		t.Fatalf("Resolve must report the second complex as the one to delete")
	}
	if merged.TotalFlux() <= 0 {
		t.Fatalf("a one-pair join must offer at least an Open move")
	}

	var openMove move
	found := false
	for _, m := range merged.moves {
		if m.kind == MoveOpen {
			openMove = m
			found = true
		}
	}
	if !found {
		t.Fatalf("a freshly joined complex must offer an Open move back to its components")
	}

	child, split := merged.Apply(openMove)
	if !split {
		t.Fatalf("opening a join's only pair must dissociate the complex")
	}
	if child != kinetics.Complex(b) {
		t.Fatalf("the dissociated child must be exactly the second original complex")
	}
	if merged.StrandCount() != 1 || merged.strandIDs[0] != 1 {
		t.Fatalf("the receiver must be re-homed to exactly the first original complex, got ids %v", merged.strandIDs)
	}
}
