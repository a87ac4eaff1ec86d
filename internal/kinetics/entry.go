package kinetics

// Entry wraps one live complex with its cached energy and cached total
// unimolecular flux, plus the monotonically assigned id that identifies it
// for the lifetime of the run. Order is insertion-reverse (new entries are
// linked at the head) and is not meant to be externally observable beyond
// the stable forward walk Ensemble.Iterate provides.
type Entry struct {
	ID   int
	cplx Complex

	energy float64
	flux   float64

	next *Entry
}

// Complex returns the entry's owned complex.
func (e *Entry) Complex() Complex { return e.cplx }

// Energy returns the cached scalar energy, including volume and
// association corrections.
func (e *Entry) Energy() float64 { return e.energy }

// Flux returns the cached total unimolecular flux out of this complex.
func (e *Entry) Flux() float64 { return e.flux }

// initializeComplex triggers the complex's loop-graph generation; it must
// run once, before the entry's caches are ever filled.
func (e *Entry) initializeComplex() {
	e.cplx.GenerateLoops()
	e.cplx.DisplayMoves()
}

// refresh recomputes the cached energy and flux from the owned complex,
// applying the volume/association correction for excess strand count.
// Callers must invoke this after any move that touches the entry, and may
// call it any number of times with no intervening move with no observable
// effect (refresh is idempotent).
func (e *Entry) refresh(em EnergyModel) {
	strands := e.cplx.StrandCount()
	e.energy = e.cplx.Energy() + (em.VolumeEnergy()+em.AssocEnergy())*float64(strands-1)
	e.flux = e.cplx.TotalFlux()
}

// EnergyReportFlag selects which corrections are subtracted back out of the
// cached energy when reporting it. Bit 0 = include volume correction, bit 1
// = include association correction; set means "leave it in", matching the
// two-bit convention of the external reporting surface.
type EnergyReportFlag int

const (
	ReportVolume EnergyReportFlag = 1 << 0
	ReportAssoc  EnergyReportFlag = 1 << 1
)

// ReportedEnergy returns the cached energy with whichever corrections the
// flag excludes subtracted back out.
func (e *Entry) ReportedEnergy(em EnergyModel, flag EnergyReportFlag) float64 {
	out := e.energy
	strands := e.cplx.StrandCount()
	if flag&ReportVolume == 0 {
		out -= em.VolumeEnergy() * float64(strands-1)
	}
	if flag&ReportAssoc == 0 {
		out -= em.AssocEnergy() * float64(strands-1)
	}
	return out
}

// Dump is the diagnostic per-entry snapshot exposed on the external
// reporting surface: id, names, sequence, structure, and cached energy.
type Dump struct {
	ID        int
	Names     string
	Sequence  string
	Structure string
	Energy    float64
}

// Dump renders the entry's diagnostic snapshot.
func (e *Entry) Dump() Dump {
	return Dump{
		ID:        e.ID,
		Names:     e.cplx.StrandNames(),
		Sequence:  e.cplx.Sequence(),
		Structure: e.cplx.Structure(),
		Energy:    e.energy,
	}
}
