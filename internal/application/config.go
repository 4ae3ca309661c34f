package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-tally/infrastructure/calculators"
)

// ReferencePolicy decides what happens to purchase records and items that
// reference unknown sellers or products.
type ReferencePolicy string

const (
	// ReferenceSkip leaves dangling references out of the analysis and
	// reports them as diagnostics.
	ReferenceSkip ReferencePolicy = "skip"

	// ReferenceStrict fails the analysis on the first dangling reference.
	ReferenceStrict ReferencePolicy = "strict"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// AnalysisConfig is the complete, file-level description of an analysis:
// which strategies to use and how to shape the report.
// Use AnalysisConfig when analyses are driven from YAML rather than wired
// in code.
type AnalysisConfig struct {
	// Version specifies the configuration schema version using semantic
	// versioning.
	Version string `yaml:"version" validate:"required,semver"`
	// Revenue selects the revenue strategy.
	Revenue StrategyConfig `yaml:"revenue"`
	// Bonus selects the bonus strategy.
	Bonus StrategyConfig `yaml:"bonus"`
	// Report controls the report shape.
	Report ReportConfig `yaml:"report"`
}

// StrategyConfig names a registered calculator and its parameters.
type StrategyConfig struct {
	// Strategy is the name the calculator is registered under.
	Strategy string `yaml:"strategy" validate:"required,min=1,max=100"`
	// Parameters are passed to the calculator factory as-is.
	Parameters map[string]any `yaml:"parameters,omitempty"`
}

// ReportConfig controls how aggregated stats are turned into a report.
type ReportConfig struct {
	// TopProducts is the maximum number of products listed per seller.
	TopProducts int `yaml:"top_products" validate:"min=1,max=100"`
	// DecimalPlaces is the precision monetary fields are rounded to.
	DecimalPlaces int32 `yaml:"decimal_places" validate:"min=0,max=6"`
	// ReferencePolicy handles unknown seller and product references.
	ReferencePolicy ReferencePolicy `yaml:"reference_policy" validate:"required,oneof=skip strict"`
}

// DefaultReportConfig returns the reference report shape: ten top
// products, two decimal places, unknown references skipped.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		TopProducts:     10,
		DecimalPlaces:   2,
		ReferencePolicy: ReferenceSkip,
	}
}

// DefaultAnalysisConfig returns a configuration using the simple revenue
// strategy, the default profit tiers and the default report shape.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Version: "1.0.0",
		Revenue: StrategyConfig{Strategy: calculators.SimpleRevenueName},
		Bonus:   StrategyConfig{Strategy: calculators.ProfitTiersName},
		Report:  DefaultReportConfig(),
	}
}

// ParseConfig decodes YAML over the default configuration and validates
// the result. Fields absent from data keep their defaults.
func ParseConfig(data []byte) (*AnalysisConfig, error) {
	cfg := DefaultAnalysisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfig reads and parses an analysis configuration file.
func LoadConfig(path string) (*AnalysisConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseConfig(data)
}
