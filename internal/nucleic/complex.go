package nucleic

import (
	"strings"

	"github.com/daniacca/nastrand/internal/kinetics"
)

// MoveKind is the closed set of structural moves a StrandComplex can
// propose: Open breaks the outermost stem pair, Close forms the next
// outermost pair, Shift is a conformational move that leaves the stem
// length and the rendered structure unchanged.
type MoveKind int

const (
	MoveOpen MoveKind = iota
	MoveClose
	MoveShift
)

// move is the concrete kinetics.Move produced by a StrandComplex.
type move struct {
	rate float64
	kind MoveKind
}

func (m move) Rate() float64 { return m.rate }
func (m move) Type() int     { return int(m.kind) }

// StrandComplex is a single-stem dot-bracket complex: zero or more 5'/3'
// single-stranded overhangs flanking a stem of up to maxStem base pairs
// enclosing a loop. A StrandComplex with maxStem == 0 is a fully unpaired
// single strand, exposing every base as an exterior base available for
// joining. It implements kinetics.Complex.
type StrandComplex struct {
	strandIDs   []int
	strandNames string
	seq         string

	overhang5 string
	overhang3 string
	maxStem   int
	stem      int
	loopLen   int

	em *SimpleEnergyModel

	moves  []move
	flux   float64
	energy float64

	// components holds the two complexes a join produced this one from.
	// nil unless this complex was created by Resolve. When stem reaches 1
	// and components is set, an Open move dissociates back into them
	// instead of merely decrementing stem.
	components [2]*StrandComplex
}

// NewHairpin builds a single-strand hairpin complex: overhang5Len
// unpaired bases, a stem of up to maxStem pairs, a loop of loopLen
// unpaired bases, the mirrored stem, and whatever remains of sequence as
// the 3' overhang. The stem starts fully open (stem = 0).
func NewHairpin(strandID int, name, sequence string, overhang5Len, maxStem, loopLen int, em *SimpleEnergyModel) *StrandComplex {
	c := &StrandComplex{
		strandIDs:   []int{strandID},
		strandNames: name,
		seq:         sequence,
		maxStem:     maxStem,
		loopLen:     loopLen,
		em:          em,
	}
	c.overhang5 = sequence[:overhang5Len]
	tailStart := overhang5Len + maxStem + loopLen + maxStem
	c.overhang3 = sequence[tailStart:]
	return c
}

// NewSingleStrand builds a fully unpaired single strand: every base is an
// exterior base available for joining.
func NewSingleStrand(strandID int, name, sequence string, em *SimpleEnergyModel) *StrandComplex {
	return &StrandComplex{
		strandIDs:   []int{strandID},
		strandNames: name,
		seq:         sequence,
		overhang5:   sequence,
		em:          em,
	}
}

// GenerateLoops rebuilds the set of structurally available moves from the
// current stem length. It must run before DisplayMoves and again after any
// move changes the structure.
func (c *StrandComplex) GenerateLoops() {
	c.moves = c.moves[:0]
	if c.stem > 0 {
		c.moves = append(c.moves, move{kind: MoveOpen})
	}
	if c.stem < c.maxStem {
		c.moves = append(c.moves, move{kind: MoveClose})
	}
	if c.stem > 0 && c.stem < c.maxStem {
		c.moves = append(c.moves, move{kind: MoveShift})
	}
}

// DisplayMoves computes each available move's rate from the energy model
// and caches the complex's total flux and energy.
func (c *StrandComplex) DisplayMoves() {
	var total float64
	for i := range c.moves {
		c.moves[i].rate = c.em.moveRate(c.deltaG(c.moves[i].kind))
		total += c.moves[i].rate
	}
	c.flux = total
	c.energy = c.computeEnergy()
}

// deltaG returns the free-energy change of applying kind from the current
// stem length, used to weight the move's rate via a Metropolis rule.
func (c *StrandComplex) deltaG(kind MoveKind) float64 {
	switch kind {
	case MoveClose:
		return c.em.PerPairBonus
	case MoveOpen:
		return -c.em.PerPairBonus
	default:
		return 0
	}
}

func (c *StrandComplex) computeEnergy() float64 {
	e := float64(c.stem) * c.em.PerPairBonus
	if c.stem > 0 {
		e += c.em.LoopPenalty
	}
	return e
}

// TotalFlux returns the cached sum of all enabled move rates.
func (c *StrandComplex) TotalFlux() float64 { return c.flux }

// Energy returns the cached raw structural energy (no volume/assoc
// correction; those are applied by the owning Entry).
func (c *StrandComplex) Energy() float64 { return c.energy }

// StrandCount returns the number of distinct strands in this complex.
func (c *StrandComplex) StrandCount() int { return len(c.strandIDs) }

// ExteriorBases tallies the Watson-Crick base identities available for
// joining: every base in the unpaired 5'/3' overhangs.
func (c *StrandComplex) ExteriorBases() kinetics.ExteriorBases {
	var out kinetics.ExteriorBases
	for _, s := range [2]string{c.overhang5, c.overhang3} {
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case 'A':
				out.A++
			case 'C':
				out.C++
			case 'G':
				out.G++
			case 'T':
				out.T++
			}
		}
	}
	return out
}

// SelectMove walks the cached move list in generation order, consuming
// residual exactly as Ensemble.Step consumes the ensemble-wide budget.
func (c *StrandComplex) SelectMove(residual *float64) kinetics.Move {
	for _, m := range c.moves {
		if *residual < m.rate {
			return m
		}
		*residual -= m.rate
	}
	panic("nucleic: move selection walked past the end of the move list")
}

// Apply performs the given move's structural change and immediately
// regenerates the move list, rates, and energy so the owning Entry's next
// refresh observes the post-move state. An Open move that fully unwinds a
// join-formed stem dissociates the complex back into the two strands that
// formed it and reports split = true.
func (c *StrandComplex) Apply(m kinetics.Move) (kinetics.Complex, bool) {
	mv, ok := m.(move)
	if !ok {
		panic("nucleic: Apply received a move not produced by this complex")
	}

	switch MoveKind(mv.Type()) {
	case MoveOpen:
		if c.stem == 1 && c.components[0] != nil {
			a, b := c.components[0], c.components[1]
			a.GenerateLoops()
			a.DisplayMoves()
			b.GenerateLoops()
			b.DisplayMoves()
			*c = *a
			return b, true
		}
		c.stem--
	case MoveClose:
		c.stem++
	case MoveShift:
		// conformational only: stem length is unchanged.
	}

	c.GenerateLoops()
	c.DisplayMoves()
	return nil, false
}

// Structure renders the dot-bracket string: dots for the overhangs and
// loop, parentheses for however much of the stem is currently closed.
func (c *StrandComplex) Structure() string {
	if c.maxStem == 0 {
		return strings.Repeat(".", len(c.overhang5)+c.loopLen+len(c.overhang3))
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(".", len(c.overhang5)))
	b.WriteString(strings.Repeat("(", c.stem))
	b.WriteString(strings.Repeat(".", c.maxStem-c.stem))
	b.WriteString(strings.Repeat(".", c.loopLen))
	b.WriteString(strings.Repeat(".", c.maxStem-c.stem))
	b.WriteString(strings.Repeat(")", c.stem))
	b.WriteString(strings.Repeat(".", len(c.overhang3)))
	return b.String()
}

// StrandNames returns the complex's display name (strand name, or
// "a+b"-joined names for a join product).
func (c *StrandComplex) StrandNames() string { return c.strandNames }

// Sequence returns the complex's full sequence.
func (c *StrandComplex) Sequence() string { return c.seq }

// CheckIDBound reports whether strandID names a strand in this complex
// that is bound to at least one other strand (i.e. this complex has more
// than one strand).
func (c *StrandComplex) CheckIDBound(strandID int) bool {
	if len(c.strandIDs) < 2 {
		return false
	}
	for _, id := range c.strandIDs {
		if id == strandID {
			return true
		}
	}
	return false
}

// CheckIDList reports whether ids equals this complex's strand-id list up
// to circular rotation.
func (c *StrandComplex) CheckIDList(ids []int) bool {
	return circularMatch(c.strandIDs, ids)
}

func circularMatch(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	if n == 0 {
		return true
	}
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n; i++ {
			if a[(i+shift)%n] != b[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
