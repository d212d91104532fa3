package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct {
	// Defaults seeds global_assumptions before a file is decoded, so keys
	// the file omits keep these values.
	Defaults domain.GlobalAssumptions
}

// NewInputParser creates a new input parser seeded with the built-in
// assumptions.
func NewInputParser() *InputParser {
	return &InputParser{Defaults: domain.DefaultGlobalAssumptions()}
}

// NewInputParserWithDefaults creates a parser seeded with g, typically the
// assumptions resolved from the user's preferences.
func NewInputParserWithDefaults(g domain.GlobalAssumptions) *InputParser {
	return &InputParser{Defaults: g.WithDefaults()}
}

// LoadFromFile loads a scenario file. JSON files parse too, since YAML is a
// superset of JSON.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.Configuration{GlobalAssumptions: ip.Defaults}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	config.GlobalAssumptions = config.GlobalAssumptions.WithDefaults()

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Every scenario is
// resolved against the global assumptions and checked the same way the
// engine will check it, so a file that validates also runs.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("%w: configuration is required", domain.ErrInvalidInput)
	}

	if err := ip.validateGlobalAssumptions(&config.GlobalAssumptions); err != nil {
		return fmt.Errorf("global assumptions validation failed: %w", err)
	}

	if len(config.Accumulation) == 0 && len(config.Withdrawal) == 0 {
		return fmt.Errorf("%w: no scenarios provided", domain.ErrInvalidInput)
	}

	year := calculation.CurrentYear()
	seen := make(map[string]bool)

	for i, scenario := range config.Accumulation {
		if err := checkName(seen, scenario.Name); err != nil {
			return fmt.Errorf("accumulation scenario %d validation failed: %w", i, err)
		}
		if err := scenario.Input(config.GlobalAssumptions, year).Validate(); err != nil {
			return fmt.Errorf("accumulation scenario %d validation failed: %w", i, err)
		}
	}

	for i, scenario := range config.Withdrawal {
		if err := checkName(seen, scenario.Name); err != nil {
			return fmt.Errorf("withdrawal scenario %d validation failed: %w", i, err)
		}
		if err := scenario.Input(config.GlobalAssumptions, year).Validate(); err != nil {
			return fmt.Errorf("withdrawal scenario %d validation failed: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateGlobalAssumptions(assumptions *domain.GlobalAssumptions) error {
	if !assumptions.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", domain.ErrInvalidInput)
	}
	if assumptions.TaxRatePercent.IsNegative() || assumptions.TaxRatePercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tax rate must be in [0, 100)", domain.ErrInvalidInput)
	}
	if assumptions.PriceModel != domain.Standard && assumptions.PriceModel != domain.Conservative {
		return fmt.Errorf("%w: unknown price model", domain.ErrInvalidInput)
	}
	return nil
}

// checkName rejects duplicate scenario names. Unnamed scenarios are numbered
// by the engine and never collide.
func checkName(seen map[string]bool, name string) error {
	if name == "" {
		return nil
	}
	if seen[name] {
		return fmt.Errorf("%w: duplicate scenario name %q", domain.ErrInvalidInput, name)
	}
	seen[name] = true
	return nil
}

// SaveConfiguration writes config as YAML, creating parent directories.
// An existing file is only replaced when overwrite is set.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(filename); err == nil {
			return fmt.Errorf("%s already exists: %w", filename, os.ErrExist)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", filename, err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	conservative := domain.Conservative
	noTax := decimal.Zero

	return &domain.Configuration{
		GlobalAssumptions: ip.Defaults.WithDefaults(),
		Accumulation: []domain.AccumulationScenario{
			{
				Name:                "Monthly 10k until 2040",
				InitialBTC:          decimal.Zero,
				MonthlyContribution: decimal.NewFromInt(10000),
				ContributionEndYear: 2040,
				StartYear:           domain.DefaultAccumulationStartYear,
				EndYear:             domain.DefaultAccumulationEndYear,
			},
			{
				Name:                "Seeded 0.1 BTC, conservative curve",
				InitialBTC:          decimal.RequireFromString("0.1"),
				MonthlyContribution: decimal.NewFromInt(30000),
				ContributionEndYear: 2035,
				StartYear:           domain.DefaultAccumulationStartYear,
				EndYear:             domain.DefaultAccumulationEndYear,
				PriceModel:          &conservative,
			},
		},
		Withdrawal: []domain.WithdrawalScenario{
			{
				Name:       "Fixed 1M per year",
				InitialBTC: decimal.NewFromInt(1),
				Mode:       domain.Fixed,
				Amount:     decimal.NewFromInt(1_000_000),
				StartYear:  2030,
				Years:      domain.DefaultWithdrawalYears,
			},
			{
				Name:           "4% rule, tax-free account",
				InitialBTC:     decimal.NewFromInt(1),
				Mode:           domain.Percentage,
				Amount:         decimal.NewFromInt(4),
				StartYear:      2030,
				EndYear:        2060,
				TaxRatePercent: &noTax,
			},
		},
	}
}
