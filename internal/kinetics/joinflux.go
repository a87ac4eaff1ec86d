package kinetics

// totals is the four-base exterior tally accumulated across entries.
type totals struct {
	A, C, G, T int
}

func sumExteriorBases(en *Ensemble) totals {
	var t totals
	for e := en.first; e != nil; e = e.next {
		b := e.cplx.ExteriorBases()
		t.A += b.A
		t.C += b.C
		t.G += b.G
		t.T += b.T
	}
	return t
}

// countOf returns the exterior-base count for the 1-4 Watson-Crick type
// code (A=1, C=2, G=3, T=4).
func countOf(b ExteriorBases, typeCode int) int {
	switch typeCode {
	case 1:
		return b.A
	case 2:
		return b.C
	case 3:
		return b.G
	case 4:
		return b.T
	default:
		panic("kinetics: invalid base type code")
	}
}

func countOfTotals(t totals, typeCode int) int {
	return countOf(ExteriorBases(t), typeCode)
}

// computeJoinFlux implements the two linear passes of spec.md 4.3: sum
// exterior bases, then walk again subtracting each entry's own
// contribution before tallying the complementary pairings it forms with
// every entry after it in list order. This counts each ordered pair of
// distinct complexes exactly once per complementary base pairing.
func (en *Ensemble) computeJoinFlux() float64 {
	if en.numEntries <= 1 {
		return 0.0
	}

	total := sumExteriorBases(en)
	moveCount := 0

	for e := en.first; e != nil; e = e.next {
		b := e.cplx.ExteriorBases()
		total.A -= b.A
		total.C -= b.C
		total.G -= b.G
		total.T -= b.T

		moveCount += total.A * b.T
		moveCount += total.T * b.A
		moveCount += total.G * b.C
		moveCount += total.C * b.G
	}

	if moveCount == 0 {
		return 0.0
	}
	return float64(moveCount) * en.em.JoinRate()
}

// joinChannel is one of the four complementary-base pairing channels
// tested, in order, while resolving a join: A (later entries) against T
// (this entry), T against A, G against C, C against G. types are the 1-4
// Watson-Crick codes (A=1, C=2, G=3, T=4).
type joinChannel struct {
	laterType, ownType int
}

var joinChannels = [4]joinChannel{
	{laterType: 1, ownType: 4},
	{laterType: 4, ownType: 1},
	{laterType: 3, ownType: 2},
	{laterType: 2, ownType: 3},
}

// doJoin resolves a uniform deviate already known to lie within the join
// flux window into a concrete (complex, type, index) pair on each side,
// invokes the resolver, and updates ensemble membership: the losing entry
// is removed and the surviving (merged) complex is re-homed onto the
// winning entry.
func (en *Ensemble) doJoin(choice float64) {
	if en.numEntries <= 1 {
		return
	}

	intChoice := int(choice / en.em.JoinRate())
	total := sumExteriorBases(en)

	var (
		picked    [2]Complex
		types     [2]int
		index     [2]int
		firstEnt  *Entry
		secondEnt *Entry
	)

outer:
	for e := en.first; e != nil; e = e.next {
		b := e.cplx.ExteriorBases()
		total.A -= b.A
		total.C -= b.C
		total.G -= b.G
		total.T -= b.T

		for _, ch := range joinChannels {
			laterCount := countOfTotals(total, ch.laterType)
			ownCount := countOf(b, ch.ownType)
			window := laterCount * ownCount
			if intChoice >= window {
				intChoice -= window
				continue
			}

			picked[0] = e.cplx
			types[0] = ch.ownType
			types[1] = ch.laterType
			firstEnt = e

			for partner := e.next; partner != nil; partner = partner.next {
				partnerCount := countOf(partner.cplx.ExteriorBases(), ch.laterType)
				sub := partnerCount * ownCount
				if intChoice < sub {
					picked[1] = partner.cplx
					secondEnt = partner
					index[0] = intChoice / partnerCount
					index[1] = intChoice - index[0]*partnerCount
					break outer
				}
				intChoice -= sub
			}
			break outer
		}
	}

	if firstEnt == nil || secondEnt == nil {
		panic("kinetics: join resolution failed to find a partner pair within the chosen window")
	}

	merged, _ := en.resolver(picked, types, index)

	firstEnt.cplx = merged
	firstEnt.refresh(en.em)
	en.remove(secondEnt)
}
