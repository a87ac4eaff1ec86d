package kinetics

// PredicateKind is the closed set of stop-predicate variants (spec.md 3,
// 4.4). A tagged struct with an exhaustive switch over Kind, rather than
// dynamic dispatch, since the five kinds are known and closed.
type PredicateKind int

const (
	KindExact PredicateKind = iota
	KindDisassoc
	KindLoose
	KindCount
	KindBound
)

// Predicate is one complex-item test in a stop condition: a required
// strand-id list (matched up to circular rotation) plus, depending on
// Kind, a dot-bracket target and a disagreement tolerance. Next chains
// predicates into a logical-AND list: every predicate must be satisfied by
// some live complex, and a single complex may satisfy more than one.
type Predicate struct {
	StrandIDs []int
	Kind      PredicateKind
	Target    string // dot-bracket target; unused for KindDisassoc, KindBound
	Tolerance int    // max allowed disagreements; KindLoose, KindCount only
	Next      *Predicate
}

// list returns the predicate and its chained successors as a slice, in
// order.
func (p *Predicate) list() []*Predicate {
	var out []*Predicate
	for cur := p; cur != nil; cur = cur.Next {
		out = append(out, cur)
	}
	return out
}

// Evaluator matches the live ensemble against stop-predicate lists.
type Evaluator struct {
	Log Logger
}

// NewEvaluator returns an Evaluator that reports configuration errors to
// the given logger (NoOpLogger if nil).
func NewEvaluator(log Logger) *Evaluator {
	if log == nil {
		log = NoOpLogger{}
	}
	return &Evaluator{Log: log}
}

// Matches implements spec.md 4.4's top-level policy: a head predicate of
// kind Bound requires the list to contain exactly that one predicate
// (multi-predicate Bound matching is an explicit, permanent limitation,
// not silently widened); otherwise every predicate in the chain must be
// satisfied by some live complex whose strand-id list equals the
// predicate's up to circular rotation, and the list must not be longer
// than the number of live complexes.
func (ev *Evaluator) Matches(en *Ensemble, head *Predicate) bool {
	if head == nil {
		return true
	}

	if head.Kind == KindBound {
		if head.Next != nil {
			ev.Log.Errorf("stop predicate: attempting to check for multiple complexes being bound, not currently supported")
			return false
		}
		return ev.matchesBound(en, head)
	}

	predicates := head.list()
	if len(predicates) > en.Count() {
		return false
	}

	for _, p := range predicates {
		if !ev.anyComplexSatisfies(en, p) {
			return false
		}
	}
	return true
}

func (ev *Evaluator) matchesBound(en *Ensemble, p *Predicate) bool {
	for _, strandID := range p.StrandIDs {
		bound := false
		en.Iterate(func(e *Entry) {
			if bound {
				return
			}
			if e.cplx.CheckIDBound(strandID) {
				bound = true
			}
		})
		if !bound {
			return false
		}
	}
	return true
}

func (ev *Evaluator) anyComplexSatisfies(en *Ensemble, p *Predicate) bool {
	satisfied := false
	en.Iterate(func(e *Entry) {
		if satisfied {
			return
		}
		if !e.cplx.CheckIDList(p.StrandIDs) {
			return
		}
		if testKind(e.cplx, p) {
			satisfied = true
		}
	})
	return satisfied
}

// testKind applies the per-kind structural test to a candidate complex
// whose strand-id set has already been confirmed to match the predicate.
func testKind(c Complex, p *Predicate) bool {
	switch p.Kind {
	case KindDisassoc:
		return true
	case KindExact:
		return c.Structure() == p.Target
	case KindLoose:
		return checkLooseStructure(c.Structure(), p.Target, p.Tolerance)
	case KindCount:
		return checkCountStructure(c.Structure(), p.Target, p.Tolerance)
	default:
		return false
	}
}

// checkLooseStructure and checkCountStructure implement the exact
// single-pass disagreement accounting of spec.md 4.4: this is not Hamming
// distance on the two strings. Two stacks of open-paren positions track
// which opening brackets each ')' is paired with, so a ')' that closes the
// "wrong" opening position is charged for both the position itself and
// the mismatched opening position it reveals, without double-charging a
// position whose character mismatch was already counted on the forward
// pass.
func checkLooseStructure(ourStruc, stopStruc string, tolerance int) bool {
	return checkDistance(ourStruc, stopStruc, tolerance, true)
}

func checkCountStructure(ourStruc, stopStruc string, tolerance int) bool {
	return checkDistance(ourStruc, stopStruc, tolerance, false)
}

func checkDistance(ourStruc, stopStruc string, tolerance int, wildcards bool) bool {
	if len(ourStruc) != len(stopStruc) {
		return false
	}

	remaining := tolerance
	var ourPairs, stopPairs []int

	for i := 0; i < len(ourStruc); i++ {
		our := ourStruc[i]
		stop := stopStruc[i]

		isWildcard := wildcards && stop == '*'
		if !isWildcard && our != stop {
			remaining--
		}

		if our == '(' {
			ourPairs = append(ourPairs, i)
		}
		if stop == '(' {
			stopPairs = append(stopPairs, i)
		}

		switch {
		case our == ')' && stop == ')':
			ourOpen := ourPairs[len(ourPairs)-1]
			stopOpen := stopPairs[len(stopPairs)-1]
			if ourOpen != stopOpen {
				remaining-- // this ')' was paired wrong
				if ourStruc[stopOpen] == '(' {
					remaining-- // the position it should have paired with, also mis-paired
				}
			}
			ourPairs = ourPairs[:len(ourPairs)-1]
			stopPairs = stopPairs[:len(stopPairs)-1]
		default:
			if our == ')' {
				ourPairs = ourPairs[:len(ourPairs)-1]
			}
			if stop == ')' {
				stopOpen := stopPairs[len(stopPairs)-1]
				if ourStruc[stopOpen] == '(' {
					remaining--
				}
				stopPairs = stopPairs[:len(stopPairs)-1]
			}
		}

		if remaining < 0 {
			return false
		}
	}
	return true
}
