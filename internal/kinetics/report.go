package kinetics

import (
	"fmt"
	"io"
)

// PrintComplex writes a human-readable summary of one entry to w, in one
// of three energy conventions selected by flag: the cached energy as is
// (ReportVolume|ReportAssoc), energy minus the volume correction only
// (ReportAssoc), or energy minus both volume and association corrections
// (flag==0). Per the design notes, diagnostics are injected
// through a writer interface rather than a process-wide stream.
func (e *Entry) PrintComplex(w io.Writer, em EnergyModel, flag EnergyReportFlag) {
	fmt.Fprintf(w, "Complex %02d: %s\n", e.ID, e.cplx.StrandNames())
	fmt.Fprintf(w, "          : %s\n", e.cplx.Sequence())
	fmt.Fprintf(w, "          : %s\n", e.cplx.Structure())
	fmt.Fprintf(w, "          : Energy: (%6.6f) TotalFlux: %6.2f\n", e.ReportedEnergy(em, flag), e.flux)
}

// PrintComplexList writes every live entry's summary to w, in order.
func (en *Ensemble) PrintComplexList(w io.Writer, flag EnergyReportFlag) {
	for e := en.first; e != nil; e = e.next {
		e.PrintComplex(w, en.em, flag)
	}
}

// Dumps returns the diagnostic snapshot of every live entry, in order.
func (en *Ensemble) Dumps() []Dump {
	out := make([]Dump, 0, en.numEntries)
	en.Iterate(func(e *Entry) {
		out = append(out, e.Dump())
	})
	return out
}
