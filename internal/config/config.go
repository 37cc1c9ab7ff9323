// Package config defines the data structures related to configuration and
// includes functions for loading, resolving and watching it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/docuflow-roi/internal/estimator"
	"github.com/iwvelando/docuflow-roi/pkg/mathutil"
	"github.com/spf13/viper"
)

// DefaultScenarioName is used when the configuration declares no scenarios.
const DefaultScenarioName = "default"

// EnvPrefix prefixes environment variables that override configuration keys,
// e.g. ROI_LOGGING_LEVEL.
const EnvPrefix = "ROI"

// Configuration holds all configuration for roi-estimator.
type Configuration struct {
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Common    Common        `yaml:"common"`
	Scenarios []Scenario    `yaml:"scenarios,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Common holds the inputs shared by all scenarios.
type Common struct {
	Inputs estimator.Input `yaml:"inputs"`
}

// Scenario is a named variation of the common inputs.
type Scenario struct {
	Name   string         `yaml:"name"`
	Active bool           `yaml:"active"`
	Inputs InputOverrides `yaml:"inputs,omitempty"`
}

// InputOverrides replaces individual common inputs. Nil fields keep the
// common value.
type InputOverrides struct {
	MonthlyDocuments            *float64 `yaml:"monthlyDocuments,omitempty"`
	TimePerDocumentMinutes      *float64 `yaml:"timePerDocumentMinutes,omitempty"`
	HourlyCost                  *float64 `yaml:"hourlyCost,omitempty"`
	ManualErrorRatePercent      *float64 `yaml:"manualErrorRatePercent,omitempty"`
	AuditPrepTimeHours          *float64 `yaml:"auditPrepTimeHours,omitempty"`
	AnnualStorageCost           *float64 `yaml:"annualStorageCost,omitempty"`
	AnnualLegacyIntegrationCost *float64 `yaml:"annualLegacyIntegrationCost,omitempty"`
	ImplementationCost          *float64 `yaml:"implementationCost,omitempty"`
	AnnualSubscriptionCost      *float64 `yaml:"annualSubscriptionCost,omitempty"`
}

// ResolvedScenario is a scenario with its overrides applied.
type ResolvedScenario struct {
	Name  string
	Input estimator.Input
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering the keys lets environment variables override them even
	// when the file omits the section.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputfile", "")
	v.SetDefault("output.format", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Apply returns base with every non-nil override substituted.
func (o InputOverrides) Apply(base estimator.Input) estimator.Input {
	out := base
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&out.MonthlyDocuments, o.MonthlyDocuments)
	set(&out.TimePerDocumentMinutes, o.TimePerDocumentMinutes)
	set(&out.HourlyCost, o.HourlyCost)
	set(&out.ManualErrorRatePercent, o.ManualErrorRatePercent)
	set(&out.AuditPrepTimeHours, o.AuditPrepTimeHours)
	set(&out.AnnualStorageCost, o.AnnualStorageCost)
	set(&out.AnnualLegacyIntegrationCost, o.AnnualLegacyIntegrationCost)
	set(&out.ImplementationCost, o.ImplementationCost)
	set(&out.AnnualSubscriptionCost, o.AnnualSubscriptionCost)
	return out
}

// Resolve returns the inputs of every active scenario in declaration order.
// A configuration without scenarios resolves to a single default scenario
// using the common inputs.
func (conf *Configuration) Resolve() []ResolvedScenario {
	if len(conf.Scenarios) == 0 {
		return []ResolvedScenario{{Name: DefaultScenarioName, Input: conf.Common.Inputs}}
	}

	var resolved []ResolvedScenario
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			continue
		}
		resolved = append(resolved, ResolvedScenario{
			Name:  scenario.Name,
			Input: scenario.Inputs.Apply(conf.Common.Inputs),
		})
	}
	return resolved
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Scenarios) > 0 {
		active := 0
		seen := make(map[string]bool)
		for i, scenario := range conf.Scenarios {
			if scenario.Name == "" {
				warnings = append(warnings, fmt.Sprintf("Scenario #%d has no name", i+1))
			} else if seen[scenario.Name] {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' is declared more than once", scenario.Name))
			}
			seen[scenario.Name] = true
			if scenario.Active {
				active++
			}
		}
		if active == 0 {
			warnings = append(warnings, "No active scenarios; nothing will be estimated")
		}
	}

	for _, scenario := range conf.Resolve() {
		in := scenario.Input
		if mathutil.IsZero(in.ImplementationCost) && mathutil.IsZero(in.AnnualSubscriptionCost) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no implementation or subscription cost; ROI is undefined", scenario.Name))
		}
	}

	return warnings
}
