package driver

import (
	"strings"
	"testing"

	"github.com/daniacca/nastrand/internal/kinetics"
)

func TestValidate_RejectsMissingFields(t *testing.T) {
	err := Validate(Config{})
	if err == nil {
		t.Fatalf("an empty config must fail validation")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("Validate must return a *ValidationError, got %T", err)
	}
	if len(ve.Issues) < 3 {
		t.Fatalf("expected multiple collected issues, got %v", ve.Issues)
	}
}

func TestValidate_AcceptsMinimalValidConfig(t *testing.T) {
	cfg := Config{
		TemperatureK: 310.15,
		SaltMolar:    1.0,
		Mode:         ModeTrajectory,
		EventBudget:  0.01,
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(valid config) = %v, want nil", err)
	}
}

func TestValidate_RejectsUnknownMode(t *testing.T) {
	cfg := Config{TemperatureK: 300, EventBudget: 1, Mode: "bogus"}
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "mode") {
		t.Fatalf("Validate must flag an unknown mode, got %v", err)
	}
}

func TestValidate_RejectsChainedBoundClause(t *testing.T) {
	cfg := Config{
		TemperatureK: 300,
		EventBudget:  1,
		Mode:         ModeTrajectory,
		StopConditions: []StopConditionConfig{
			{
				StrandIDs: []int{1},
				Kind:      "bound",
				Next:      &StopConditionConfig{StrandIDs: []int{2}, Kind: "bound"},
			},
		},
	}
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "multi-bound") {
		t.Fatalf("Validate must flag a chained bound clause, got %v", err)
	}
}

func TestValidate_RejectsDuplicateStrandIDsAndUnknownKind(t *testing.T) {
	cfg := Config{
		TemperatureK: 300,
		EventBudget:  1,
		Mode:         ModeTrajectory,
		Complexes: []ComplexConfig{
			{Kind: "single", StrandID: 1, Sequence: "AAAA"},
			{Kind: "bogus", StrandID: 1, Sequence: "TTTT"},
		},
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected the unknown complex kind to be flagged, got %v", err)
	}
	if !strings.Contains(err.Error(), "more than one complex") {
		t.Errorf("expected the duplicate strand id to be flagged, got %v", err)
	}
}

func TestBuildComplex_UnknownKindErrors(t *testing.T) {
	em := Config{TemperatureK: 300, BaseRate: 1}.BuildEnergyModel()
	if _, err := BuildComplex(ComplexConfig{Kind: "triplex", Sequence: "AAAA"}, em); err == nil {
		t.Fatal("expected an error for an unknown complex kind")
	}
}

func TestBuildEnsemble_SeedsOneEntryPerComplex(t *testing.T) {
	cfg := Config{
		TemperatureK: 300,
		BaseRate:     1,
		PerPairBonus: -1.5,
		Complexes: []ComplexConfig{
			{Kind: "single", StrandID: 1, Name: "a", Sequence: "AAAA"},
			{Kind: "single", StrandID: 2, Name: "b", Sequence: "TTTT"},
		},
	}
	em := cfg.BuildEnergyModel()
	en, err := BuildEnsemble(cfg, em)
	if err != nil {
		t.Fatalf("BuildEnsemble failed: %v", err)
	}
	if en.Count() != 2 {
		t.Errorf("expected 2 entries, got %d", en.Count())
	}
}

func TestBuildEnsemble_PropagatesComplexError(t *testing.T) {
	cfg := Config{
		Complexes: []ComplexConfig{{Kind: "not-a-kind", Sequence: "AAAA"}},
	}
	em := cfg.BuildEnergyModel()
	if _, err := BuildEnsemble(cfg, em); err == nil {
		t.Fatal("expected BuildEnsemble to propagate the complex-building error")
	}
}

func TestBuildEnergyModel_DefaultsZeroRatesToOne(t *testing.T) {
	em := Config{TemperatureK: 300}.BuildEnergyModel()
	if em.BaseRate != 1.0 {
		t.Errorf("BaseRate default = %v, want 1.0", em.BaseRate)
	}
	if em.JoinRateConst != 1.0 {
		t.Errorf("JoinRateConst default = %v, want 1.0", em.JoinRateConst)
	}
}

func TestBuildPredicate_EmptyChainIsNil(t *testing.T) {
	if p := BuildPredicate(nil); p != nil {
		t.Fatalf("BuildPredicate(nil) = %v, want nil", p)
	}
}

func TestBuildPredicate_TranslatesKindsAndChains(t *testing.T) {
	chain := []StopConditionConfig{
		{
			StrandIDs: []int{1, 2},
			Kind:      "exact",
			Target:    "(())",
			Next: &StopConditionConfig{
				StrandIDs: []int{3},
				Kind:      "loose",
				Target:    "*.*",
				Tolerance: 2,
			},
		},
	}
	p := BuildPredicate(chain)
	if p == nil {
		t.Fatalf("BuildPredicate must not return nil for a non-empty chain")
	}
	if p.Kind != kinetics.KindExact || p.Target != "(())" {
		t.Fatalf("head predicate = %+v, want Kind=Exact Target=(())", p)
	}
	if p.Next == nil || p.Next.Kind != kinetics.KindLoose || p.Next.Tolerance != 2 {
		t.Fatalf("chained predicate = %+v, want Kind=Loose Tolerance=2", p.Next)
	}
}
