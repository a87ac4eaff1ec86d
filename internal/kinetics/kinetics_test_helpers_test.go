package kinetics

// mockComplex is a minimal Complex test double: a fixed energy/flux, a
// fixed exterior-base tally, and a structure/strand-id list that tests can
// set directly. SelectMove/Apply are configurable per test via fields so
// dispatcher tests can control what a "picked" complex does.
type mockComplex struct {
	strandIDs []int
	structure string
	names     string
	seq       string
	energy    float64
	flux      float64
	exterior  ExteriorBases

	selectMove func(residual *float64) Move
	apply      func(m Move) (Complex, bool)

	boundIDs map[int]bool
}

func (m *mockComplex) GenerateLoops()               {}
func (m *mockComplex) DisplayMoves()                {}
func (m *mockComplex) TotalFlux() float64           { return m.flux }
func (m *mockComplex) Energy() float64              { return m.energy }
func (m *mockComplex) StrandCount() int             { return len(m.strandIDs) }
func (m *mockComplex) ExteriorBases() ExteriorBases { return m.exterior }
func (m *mockComplex) Structure() string            { return m.structure }
func (m *mockComplex) StrandNames() string          { return m.names }
func (m *mockComplex) Sequence() string             { return m.seq }

func (m *mockComplex) SelectMove(residual *float64) Move {
	if m.selectMove != nil {
		return m.selectMove(residual)
	}
	return mockMove{}
}

func (m *mockComplex) Apply(mv Move) (Complex, bool) {
	if m.apply != nil {
		return m.apply(mv)
	}
	return nil, false
}

func (m *mockComplex) CheckIDBound(strandID int) bool {
	if m.boundIDs == nil {
		return false
	}
	return m.boundIDs[strandID]
}

func (m *mockComplex) CheckIDList(ids []int) bool {
	return circularMatch(m.strandIDs, ids)
}

// circularMatch reports whether b is a circular rotation of a, matching
// the "canonical circular permutation" matching spec.md requires for
// strand-id lists.
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

type mockMove struct {
	rate     float64
	typeCode int
}

func (m mockMove) Rate() float64 { return m.rate }
func (m mockMove) Type() int     { return m.typeCode }

type fixedEnergyModel struct {
	volume, assoc, join float64
}

func (f fixedEnergyModel) VolumeEnergy() float64 { return f.volume }
func (f fixedEnergyModel) AssocEnergy() float64  { return f.assoc }
func (f fixedEnergyModel) JoinRate() float64     { return f.join }

// noopResolver never gets called in tests that don't trigger a join.
func noopResolver(complexes [2]Complex, types [2]int, index [2]int) (Complex, Complex) {
	return complexes[0], complexes[1]
}
