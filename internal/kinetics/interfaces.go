// Package kinetics implements the stochastic state-ensemble simulator: the
// complex ensemble manager, the join-flux combinatorics, the event
// dispatcher, and the stop-predicate evaluator. The energy model and the
// strand complex themselves are external collaborators, consumed here only
// through the interfaces in this file.
package kinetics

// ExteriorBases tallies the currently single-stranded bases of a complex
// that are available for intermolecular (Watson-Crick) pairing.
type ExteriorBases struct {
	A, C, G, T int
}

// Move is a single candidate unimolecular rearrangement of a complex,
// carried only far enough to let the dispatcher report what kind of event
// occurred.
type Move interface {
	Rate() float64
	Type() int
}

// EnergyModel supplies per-complex free-energy corrections and the scalar
// bimolecular join rate. It is read-only during a step.
type EnergyModel interface {
	// VolumeEnergy is the per-excess-strand volume correction.
	VolumeEnergy() float64
	// AssocEnergy is the per-excess-strand association correction.
	AssocEnergy() float64
	// JoinRate is k_join, the rate multiplying the combinatorial join count.
	JoinRate() float64
}

// Complex owns one connected secondary-structure component: a set of
// strands held together by base pairs at a moment in time.
type Complex interface {
	// GenerateLoops and DisplayMoves are initialization hooks invoked once
	// before a complex participates in event selection.
	GenerateLoops()
	DisplayMoves()

	TotalFlux() float64
	Energy() float64
	StrandCount() int
	ExteriorBases() ExteriorBases

	// SelectMove consumes a portion of *residual (the remaining rate
	// budget) and returns the move it resolves to.
	SelectMove(residual *float64) Move

	// Apply performs a move. When the move splits the complex
	// (disassociation), it returns the newly created complex and ok=true;
	// the receiver continues to represent one of the two post-split
	// complexes. Otherwise it returns (nil, false) and the receiver has
	// been mutated in place.
	Apply(m Move) (child Complex, ok bool)

	Structure() string
	StrandNames() string
	Sequence() string

	CheckIDBound(strandID int) bool
	CheckIDList(ids []int) bool
}

// JoinResolver performs the external bimolecular join primitive: given the
// two complexes, the Watson-Crick type codes (A=1, C=2, G=3, T=4) of the two
// paired bases, and their base offsets within each complex's exterior-base
// list, it returns the surviving merged complex and the complex that must
// be deleted from the ensemble.
type JoinResolver func(complexes [2]Complex, types [2]int, index [2]int) (merged Complex, deleted Complex)
