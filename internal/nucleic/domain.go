// Package nucleic is a minimal, concrete Strand Complex and Energy Model
// that exercise internal/kinetics end to end. It plays the role the
// original Multistrand's StrandComplex/EnergyModel C++ classes play for
// the ensemble core, without attempting a full nearest-neighbor
// thermodynamic model.
package nucleic

import "strings"

// Domain is a named, sequenced nucleic-acid domain: the smallest named
// unit a Strand is composed of.
type Domain struct {
	Name     string
	Sequence string
}

// Strand is an ordered concatenation of domains, 5' to 3'.
type Strand struct {
	Name    string
	Domains []Domain
}

// Sequence returns the strand's full concatenated sequence.
func (s Strand) Sequence() string {
	var b strings.Builder
	for _, d := range s.Domains {
		b.WriteString(d.Sequence)
	}
	return b.String()
}

func complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return 0
	}
}

// watsonCrickPaired reports whether a and b can form a canonical
// Watson-Crick pair.
func watsonCrickPaired(a, b byte) bool {
	return complement(a) == b && complement(a) != 0
}
