package kinetics

// EventKind tags what a successful Step produced.
type EventKind int

const (
	EventMove EventKind = iota
	EventDissociation
	EventJoin
)

// StepResult describes the outcome of a single dispatcher step: which kind
// of event fired and, for moves and dissociations, the entry (entries)
// involved. A join touches two entries that are collapsed into one and
// reports no single representative entry, matching spec.md 4.2's
// "no single entry is the representative of the event".
type StepResult struct {
	Kind      EventKind
	Entry     *Entry // the touched (or newly created) entry; nil for a join
	NewEntry  *Entry // set only when a move splits a complex (dissociation)
}

// Step performs one dispatcher transaction (spec.md 4.2): choice must be a
// uniform deviate drawn from [0, ensemble.TotalFlux()); newtime is the
// caller-supplied simulated-time advance, accepted but otherwise unused
// here — the dispatcher is time-agnostic, per spec.md 4.5.
//
// If choice falls below the cached join flux, the join engine resolves and
// performs the join and two entries are replaced by one. Otherwise the
// remaining budget is walked against entries in intrinsic list order; the
// first entry whose cached flux exceeds the residual budget is picked, and
// its own move is selected and applied. The walk breaks as soon as a
// complex is picked: continuing to the end of the list after a pick is a
// no-op in the original algorithm and is not reproduced here (see
// DESIGN.md's note on the dispatcher's walk).
func (en *Ensemble) Step(choice float64, newtime float64) StepResult {
	_ = newtime

	if choice < en.joinRate {
		en.doJoin(choice)
		return StepResult{Kind: EventJoin}
	}
	choice -= en.joinRate

	var picked *Entry
	for e := en.first; e != nil; e = e.next {
		if choice < e.flux {
			picked = e
			break
		}
		choice -= e.flux
	}

	if picked == nil {
		panic("kinetics: dispatcher walked past the end of the ensemble without selecting a complex")
	}

	move := picked.cplx.SelectMove(&choice)
	child, split := picked.cplx.Apply(move)

	if split {
		newEntry := en.Add(child)
		newEntry.refresh(en.em)
		picked.refresh(en.em)
		return StepResult{Kind: EventDissociation, Entry: picked, NewEntry: newEntry}
	}

	picked.refresh(en.em)
	return StepResult{Kind: EventMove, Entry: picked}
}
