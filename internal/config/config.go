// Package config defines the data structures related to configuration
// and includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fishwatch/obscov/internal/simulate"
	"github.com/fishwatch/obscov/pkg/constants"
)

// Configuration holds all configuration for obscov.
type Configuration struct {
	Simulation SimulationConfig
	Targets    TargetsConfig
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// SimulationConfig holds the simulation request parameters.
type SimulationConfig struct {
	TotalEffort int     // population size in sampling units
	BycatchRate float64 // mean event count per unit effort
	Dispersion  float64 // variance-to-mean ratio; 1 = Poisson
	Replicates  int     // replicate simulations per coverage level
	Percentile  float64 // CV quantile in percent for projections
	Seed        uint64  // 0 seeds from the wall clock
}

// TargetsConfig selects which solver modes run. A zero value disables
// the mode.
type TargetsConfig struct {
	CV                   float64 // target CV in (0, 1)
	DetectionProbability float64 // target percent probability in (0, 100]
	Confidence           float64 // percent confidence for the none-observed upper limit
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the
// YAML-formatted configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset simulation parameters with their defaults.
func (conf *Configuration) ApplyDefaults() {
	if conf.Simulation.Dispersion == 0 {
		conf.Simulation.Dispersion = 1
	}
	if conf.Simulation.Replicates == 0 {
		conf.Simulation.Replicates = constants.DefaultReplicates
	}
	if conf.Simulation.Percentile == 0 {
		conf.Simulation.Percentile = constants.DefaultPercentile
	}
}

// ValidateConfiguration checks for suspicious but legal settings and
// returns human-readable warnings. Hard constraint violations surface
// later as DomainErrors from the engine entry points.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Simulation.Replicates > 0 && conf.Simulation.Replicates < 100 {
		warnings = append(warnings, fmt.Sprintf(
			"replicate count %d is low; quantile projections will be noisy below ~100 replicates",
			conf.Simulation.Replicates))
	}
	if conf.Simulation.BycatchRate > 0 && conf.Simulation.BycatchRate*float64(conf.Simulation.TotalEffort) < 1 {
		warnings = append(warnings, fmt.Sprintf(
			"expected events in total effort is below 1 (rate %g x effort %d); most replicates will observe nothing",
			conf.Simulation.BycatchRate, conf.Simulation.TotalEffort))
	}
	if conf.Targets.CV == 0 && conf.Targets.DetectionProbability == 0 {
		warnings = append(warnings, "no target configured; only the coverage projection table will be produced")
	}

	return warnings
}

// Request translates the configuration into a simulation request.
func (conf *Configuration) Request() simulate.Request {
	return simulate.Request{
		TotalEffort: conf.Simulation.TotalEffort,
		Rate:        conf.Simulation.BycatchRate,
		Dispersion:  conf.Simulation.Dispersion,
		Replicates:  conf.Simulation.Replicates,
		Percentile:  conf.Simulation.Percentile,
		Seed:        conf.Simulation.Seed,
	}
}
