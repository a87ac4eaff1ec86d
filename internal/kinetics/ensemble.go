package kinetics

// Ensemble is the intrusive singly-linked collection of live entries. It
// supports insertion, deletion on disassociation, the full rate sum, and
// O(N) weighted lookup. N is expected to stay in the tens (spec-mandated);
// should it grow large, the weighted lookup in Step can be swapped for
// a Fenwick tree over entry fluxes without changing this external contract.
type Ensemble struct {
	first      *Entry
	numEntries int
	idCounter  int
	joinRate   float64

	em       EnergyModel
	resolver JoinResolver
}

// New creates an empty ensemble bound to the given energy model and join
// resolver. The ensemble does not compute any energy or flux until
// Initialize is called.
func New(em EnergyModel, resolver JoinResolver) *Ensemble {
	return &Ensemble{em: em, resolver: resolver}
}

// Add inserts a complex at the head of the list with a freshly allocated,
// never-reused id. The returned entry is not yet participating in
// selection: Initialize or a subsequent refresh is required first.
func (en *Ensemble) Add(c Complex) *Entry {
	e := &Entry{ID: en.idCounter, cplx: c, next: en.first}
	en.first = e
	en.numEntries++
	en.idCounter++
	return e
}

// Initialize triggers loop-graph generation and populates caches for every
// entry. It is idempotent immediately after construction (entries added
// later still need their own refresh).
func (en *Ensemble) Initialize() {
	for e := en.first; e != nil; e = e.next {
		e.initializeComplex()
		e.refresh(en.em)
	}
}

// Count returns the number of live entries.
func (en *Ensemble) Count() int { return en.numEntries }

// Iterate performs a stable forward walk, calling fn for every live entry
// in intrinsic list order. No concurrent mutation is permitted during a
// walk.
func (en *Ensemble) Iterate(fn func(*Entry)) {
	for e := en.first; e != nil; e = e.next {
		fn(e)
	}
}

// TotalFlux re-derives the join flux from current exterior-base tallies,
// caches it, and returns the sum of every entry's cached flux plus the
// join flux. Floating-point addition proceeds head-to-tail, matching the
// reference implementation bit-for-bit.
func (en *Ensemble) TotalFlux() float64 {
	total := 0.0
	for e := en.first; e != nil; e = e.next {
		total += e.flux
	}
	en.joinRate = en.computeJoinFlux()
	total += en.joinRate
	return total
}

// JoinRate returns the join flux as cached by the most recent TotalFlux
// call.
func (en *Ensemble) JoinRate() float64 { return en.joinRate }

// remove unlinks and discards an entry. Callers must ensure the entry is
// not referenced elsewhere (e.g. as a pending "picked" complex).
func (en *Ensemble) remove(target *Entry) {
	if en.first == target {
		en.first = target.next
		en.numEntries--
		return
	}
	for e := en.first; e != nil; e = e.next {
		if e.next == target {
			e.next = target.next
			en.numEntries--
			return
		}
	}
}

// EnergyModel returns the ensemble's bound energy model.
func (en *Ensemble) EnergyModel() EnergyModel { return en.em }
