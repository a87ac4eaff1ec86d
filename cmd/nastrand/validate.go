package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daniacca/nastrand/internal/driver"
)

var validateFlags struct {
	configPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Lint a simulation config without running it",
	Long: `Loads a simulation config, applies environment overrides, and reports
every validation issue found (temperature/salt ranges, unknown mode,
malformed stop-condition chains, duplicate complex strand ids) in one
pass, mirroring the teacher's schema-validation-before-build convention.`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.configPath, "config", "", "path to the simulation config YAML file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(_ *cobra.Command, _ []string) error {
	cfg, err := driver.LoadConfigFile(validateFlags.configPath)
	if err != nil {
		return err
	}
	if err := driver.ApplyEnvOverrides(&cfg); err != nil {
		return err
	}
	if err := driver.Validate(cfg); err != nil {
		return err
	}
	fmt.Printf("config %s is valid (%d stop condition(s), %d complex(es))\n",
		validateFlags.configPath, len(cfg.StopConditions), len(cfg.Complexes))
	return nil
}
