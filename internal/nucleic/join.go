package nucleic

import "github.com/daniacca/nastrand/internal/kinetics"

// Resolve implements kinetics.JoinResolver for StrandComplex: it forms one
// new Watson-Crick pair between the chosen exterior bases of two distinct
// complexes, producing a single merged complex that retains both original
// complexes so a later full-stem Open can dissociate the join exactly as
// it formed. types and index identify which exterior bases paired but are
// not otherwise needed here: StrandComplex models a join as always
// contributing exactly one stem pair, regardless of which of the four
// Watson-Crick channels produced it.
func Resolve(complexes [2]kinetics.Complex, types [2]int, index [2]int) (merged, deleted kinetics.Complex) {
	_ = types
	_ = index

	a := complexes[0].(*StrandComplex)
	b := complexes[1].(*StrandComplex)

	joined := &StrandComplex{
		strandIDs:   append(append([]int{}, a.strandIDs...), b.strandIDs...),
		strandNames: a.strandNames + "+" + b.strandNames,
		seq:         a.seq + "&" + b.seq,
		maxStem:     1,
		stem:        1,
		em:          a.em,
		components:  [2]*StrandComplex{a, b},
	}
	joined.GenerateLoops()
	joined.DisplayMoves()
	return joined, b
}
