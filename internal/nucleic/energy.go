package nucleic

import "math"

// gasConstantKcal is the gas constant in kcal/(mol*K).
const gasConstantKcal = 0.0019872041

// SimpleEnergyModel is a constant-parameter stand-in for Multistrand's full
// nearest-neighbor thermodynamic model: a per-base-pair stacking bonus, a
// loop-initiation penalty, a fixed attempt frequency, and a bimolecular
// join-rate constant, evaluated at a configured temperature. It implements
// kinetics.EnergyModel.
type SimpleEnergyModel struct {
	TemperatureK     float64
	SaltMolar        float64
	PerPairBonus     float64 // kcal/mol; negative is favorable
	LoopPenalty      float64 // kcal/mol; positive is unfavorable
	BaseRate         float64 // attempt frequency, s^-1
	JoinRateConst    float64
	VolumeCorrection float64
	AssocCorrection  float64
}

// VolumeEnergy returns the per-extra-strand volume correction.
func (m *SimpleEnergyModel) VolumeEnergy() float64 { return m.VolumeCorrection }

// AssocEnergy returns the per-extra-strand association correction.
func (m *SimpleEnergyModel) AssocEnergy() float64 { return m.AssocCorrection }

// JoinRate returns the bimolecular join-rate constant k_join.
func (m *SimpleEnergyModel) JoinRate() float64 { return m.JoinRateConst }

// rt returns RT in kcal/mol at the model's configured temperature.
func (m *SimpleEnergyModel) rt() float64 {
	return gasConstantKcal * m.TemperatureK
}

// moveRate applies a Metropolis-like acceptance rule: a move that lowers or
// holds energy proceeds at the base attempt rate; a move that raises energy
// is exponentially suppressed by the Boltzmann factor.
func (m *SimpleEnergyModel) moveRate(deltaG float64) float64 {
	if deltaG <= 0 {
		return m.BaseRate
	}
	return m.BaseRate * math.Exp(-deltaG/m.rt())
}
