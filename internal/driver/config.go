// Package driver owns the configuration and per-run state machine that
// spec.md places explicitly outside THE CORE: loading simulation
// parameters, seeding a random source, and stepping internal/kinetics
// until a stop predicate matches or a time budget expires.
package driver

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/daniacca/nastrand/internal/kinetics"
	"github.com/daniacca/nastrand/internal/nucleic"
)

// Mode selects what a Run optimizes its stop behavior for.
type Mode string

const (
	ModeTrajectory       Mode = "trajectory"
	ModeFirstPassageTime Mode = "first-passage-time"
)

// StopConditionConfig is the declarative, YAML-friendly form of a
// kinetics.Predicate chain. Kind is one of "exact", "disassoc", "loose",
// "count", "bound"; Next chains further clauses as a logical AND.
type StopConditionConfig struct {
	StrandIDs []int                `yaml:"strand_ids" json:"strand_ids"`
	Kind      string               `yaml:"kind" json:"kind"`
	Target    string               `yaml:"target,omitempty" json:"target,omitempty"`
	Tolerance int                  `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	Next      *StopConditionConfig `yaml:"next,omitempty" json:"next,omitempty"`
}

// ComplexConfig is the declarative, YAML-friendly seed for one initial
// internal/nucleic complex. Kind is "hairpin" or "single".
type ComplexConfig struct {
	Kind         string `yaml:"kind" json:"kind"`
	StrandID     int    `yaml:"strand_id" json:"strand_id"`
	Name         string `yaml:"name" json:"name"`
	Sequence     string `yaml:"sequence" json:"sequence"`
	Overhang5Len int    `yaml:"overhang5_len,omitempty" json:"overhang5_len,omitempty"`
	MaxStem      int    `yaml:"max_stem,omitempty" json:"max_stem,omitempty"`
	LoopLen      int    `yaml:"loop_len,omitempty" json:"loop_len,omitempty"`
}

// Config is the full declarative description of one simulation run,
// loaded from YAML and overridable by environment variables via
// ApplyEnvOverrides.
type Config struct {
	TemperatureK   float64               `yaml:"temperature_k" json:"temperature_k"`
	SaltMolar      float64               `yaml:"salt_molar" json:"salt_molar"`
	RateModel      string                `yaml:"rate_model" json:"rate_model,omitempty"`
	Mode           Mode                  `yaml:"mode" json:"mode,omitempty"`
	EventBudget    float64               `yaml:"event_time_budget" json:"event_time_budget,omitempty"`
	Seed           int64                 `yaml:"seed" json:"seed,omitempty"`
	StopConditions []StopConditionConfig `yaml:"stop_conditions" json:"stop_conditions,omitempty"`
	LogLevel       string                `yaml:"log_level" json:"log_level,omitempty"`

	// Energy model parameters (nucleic.SimpleEnergyModel); zero-valued
	// fields fall back to BuildEnergyModel's defaults.
	PerPairBonus     float64 `yaml:"per_pair_bonus" json:"per_pair_bonus"`
	LoopPenalty      float64 `yaml:"loop_penalty" json:"loop_penalty"`
	BaseRate         float64 `yaml:"base_rate" json:"base_rate"`
	JoinRateConst    float64 `yaml:"join_rate_const" json:"join_rate_const"`
	VolumeCorrection float64 `yaml:"volume_correction" json:"volume_correction"`
	AssocCorrection  float64 `yaml:"assoc_correction" json:"assoc_correction"`

	Complexes []ComplexConfig `yaml:"complexes" json:"complexes"`
}

// BuildEnergyModel constructs the nucleic.SimpleEnergyModel a Run's
// ensemble is bound to, applying the teacher-idiom default-on-zero
// convention for the few knobs a minimal config can reasonably omit.
func (c Config) BuildEnergyModel() *nucleic.SimpleEnergyModel {
	baseRate := c.BaseRate
	if baseRate == 0 {
		baseRate = 1.0
	}
	joinRateConst := c.JoinRateConst
	if joinRateConst == 0 {
		joinRateConst = 1.0
	}
	return &nucleic.SimpleEnergyModel{
		TemperatureK:     c.TemperatureK,
		SaltMolar:        c.SaltMolar,
		PerPairBonus:     c.PerPairBonus,
		LoopPenalty:      c.LoopPenalty,
		BaseRate:         baseRate,
		JoinRateConst:    joinRateConst,
		VolumeCorrection: c.VolumeCorrection,
		AssocCorrection:  c.AssocCorrection,
	}
}

// BuildEnsemble constructs the seeded kinetics.Ensemble for a run: one
// nucleic.StrandComplex per configured ComplexConfig entry, bound to em
// and the join resolver, but not yet Initialize()d (the caller's Run does
// that as part of RunToCompletion).
func BuildEnsemble(cfg Config, em *nucleic.SimpleEnergyModel) (*kinetics.Ensemble, error) {
	en := kinetics.New(em, nucleic.Resolve)
	for i, cc := range cfg.Complexes {
		c, err := BuildComplex(cc, em)
		if err != nil {
			return nil, fmt.Errorf("driver: complex at index %d: %w", i, err)
		}
		en.Add(c)
	}
	return en, nil
}

// BuildComplex constructs one nucleic.StrandComplex from its declarative
// ComplexConfig form; exported so cmd/nastrand's serve mode can build
// complexes one at a time for the /complex insertion endpoint.
func BuildComplex(cc ComplexConfig, em *nucleic.SimpleEnergyModel) (*nucleic.StrandComplex, error) {
	switch cc.Kind {
	case "hairpin":
		return nucleic.NewHairpin(cc.StrandID, cc.Name, cc.Sequence, cc.Overhang5Len, cc.MaxStem, cc.LoopLen, em), nil
	case "single":
		return nucleic.NewSingleStrand(cc.StrandID, cc.Name, cc.Sequence, em), nil
	default:
		return nil, fmt.Errorf("unknown complex kind %q (want hairpin or single)", cc.Kind)
	}
}

// LoadConfigFile parses a YAML simulation config from path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("driver: reading config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("driver: parsing config file %q: %w", path, err)
	}
	return cfg, nil
}

// ValidationError collects multiple configuration issues so a config can
// be reported in one pass rather than failing on the first problem.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid config: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "config validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

var validModes = map[Mode]bool{
	ModeTrajectory:       true,
	ModeFirstPassageTime: true,
}

var validKinds = map[string]bool{
	"exact":    true,
	"disassoc": true,
	"loose":    true,
	"count":    true,
	"bound":    true,
}

// Validate performs comprehensive validation of a Config, collecting all
// issues rather than stopping at the first one found.
func Validate(cfg Config) error {
	err := &ValidationError{}

	if cfg.TemperatureK <= 0 {
		err.Add("temperature_k must be positive")
	}
	if cfg.SaltMolar < 0 {
		err.Add("salt_molar must not be negative")
	}
	if cfg.EventBudget <= 0 {
		err.Add("event_time_budget must be positive")
	}
	if cfg.Mode == "" {
		err.Add("mode is required")
	} else if !validModes[cfg.Mode] {
		err.Add(fmt.Sprintf("mode %q is not one of trajectory, first-passage-time", cfg.Mode))
	}

	for i := range cfg.StopConditions {
		validateStopCondition(&cfg.StopConditions[i], i, err)
	}

	seenStrandIDs := make(map[int]bool)
	for i, cc := range cfg.Complexes {
		prefix := fmt.Sprintf("complex at index %d", i)
		if cc.Kind != "hairpin" && cc.Kind != "single" {
			err.Add(prefix + fmt.Sprintf(": kind %q is not one of hairpin, single", cc.Kind))
		}
		if cc.Sequence == "" {
			err.Add(prefix + ": sequence must not be empty")
		}
		if seenStrandIDs[cc.StrandID] {
			err.Add(prefix + fmt.Sprintf(": strand_id %d is used by more than one complex", cc.StrandID))
		}
		seenStrandIDs[cc.StrandID] = true
	}

	if err.HasIssues() {
		return err
	}
	return nil
}

func validateStopCondition(sc *StopConditionConfig, index int, err *ValidationError) {
	prefix := fmt.Sprintf("stop condition at index %d", index)
	if sc.Kind == "" {
		err.Add(prefix + ": kind is required")
	} else if !validKinds[sc.Kind] {
		err.Add(prefix + fmt.Sprintf(": kind %q is not one of exact, disassoc, loose, count, bound", sc.Kind))
	}
	if (sc.Kind == "loose" || sc.Kind == "count") && sc.Tolerance < 0 {
		err.Add(prefix + ": tolerance must not be negative")
	}
	if len(sc.StrandIDs) == 0 {
		err.Add(prefix + ": strand_ids must not be empty")
	}
	if sc.Kind == "bound" && sc.Next != nil {
		err.Add(prefix + ": a bound clause may not chain further clauses (multi-bound predicates are unsupported)")
	}
	if sc.Next != nil {
		validateStopCondition(sc.Next, index, err)
	}
}

// BuildPredicate converts the declarative stop-condition chain into the
// linked kinetics.Predicate the evaluator consumes.
func BuildPredicate(chain []StopConditionConfig) *kinetics.Predicate {
	if len(chain) == 0 {
		return nil
	}
	return buildOne(&chain[0])
}

func buildOne(sc *StopConditionConfig) *kinetics.Predicate {
	if sc == nil {
		return nil
	}
	p := &kinetics.Predicate{
		StrandIDs: sc.StrandIDs,
		Target:    sc.Target,
		Tolerance: sc.Tolerance,
	}
	switch sc.Kind {
	case "exact":
		p.Kind = kinetics.KindExact
	case "disassoc":
		p.Kind = kinetics.KindDisassoc
	case "loose":
		p.Kind = kinetics.KindLoose
	case "count":
		p.Kind = kinetics.KindCount
	case "bound":
		p.Kind = kinetics.KindBound
	}
	p.Next = buildOne(sc.Next)
	return p
}

// resolver defines how to resolve a single environment-variable override,
// mirroring the teacher's flag+env resolver pattern for values that are
// more naturally one-off overrides than whole-file config.
type resolver struct {
	envVarName string
	setter     func(*Config, string) error
}

var envResolvers = []resolver{
	{envVarName: "NASTRAND_SEED", setter: func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("NASTRAND_SEED: %w", err)
		}
		c.Seed = n
		return nil
	}},
	{envVarName: "NASTRAND_LOG_LEVEL", setter: func(c *Config, v string) error {
		c.LogLevel = v
		return nil
	}},
}

// ApplyEnvOverrides layers environment-variable overrides on top of a
// loaded Config, in the teacher's resolver style: each override is
// independent and only applied when its environment variable is set.
func ApplyEnvOverrides(cfg *Config) error {
	for _, r := range envResolvers {
		if v := os.Getenv(r.envVarName); v != "" {
			if err := r.setter(cfg, v); err != nil {
				return fmt.Errorf("driver: resolving %s: %w", r.envVarName, err)
			}
		}
	}
	return nil
}
