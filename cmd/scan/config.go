package main

import (
	"sort"

	"github.com/rxtech-lab/argo-screener/internal/scanner"
	"github.com/rxtech-lab/argo-screener/internal/strategy"
	"github.com/rxtech-lab/argo-screener/internal/version"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/utils"
	"gopkg.in/yaml.v3"
)

// StrategyEntry enables one strategy in a scan config and carries its raw
// YAML configuration, decoded lazily by the strategy's own constructor.
type StrategyEntry struct {
	Enabled bool      `yaml:"enabled"`
	Config  yaml.Node `yaml:"config"`
}

// ScanConfig is the YAML scan configuration consumed by the run command.
type ScanConfig struct {
	// Version must be minor-compatible with the screener build.
	Version string `yaml:"version" validate:"required"`
	// Equity is the account equity in dollars used for position sizing.
	Equity float64 `yaml:"equity" validate:"gt=0"`
	// RiskPct is the fraction of equity risked per signal.
	RiskPct float64 `yaml:"risk_pct" validate:"gt=0,lte=1"`
	// MaxPositionPct caps the position value as a fraction of equity.
	MaxPositionPct float64 `yaml:"max_position_pct" validate:"gt=0,lte=1"`
	// Data is the CSV or Parquet bar file to scan.
	Data string `yaml:"data" validate:"required"`
	// Universe restricts the scan to these symbols. Empty scans every
	// symbol in the data file.
	Universe []string `yaml:"universe"`
	// Scanner holds worker-pool and risk-filter settings.
	Scanner scanner.Config `yaml:"scanner"`
	// Strategies maps strategy names to their entries.
	Strategies map[string]StrategyEntry `yaml:"strategies"`
}

// DefaultScanConfig returns the defaults a config file is applied over.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Version:        version.Version,
		Equity:         100_000,
		RiskPct:        strategy.DefaultRiskPct,
		MaxPositionPct: strategy.DefaultMaxPositionPct,
		Scanner:        scanner.DefaultConfig(),
	}
}

// LoadScanConfig decodes a scan config over the defaults and checks its
// declared version against the screener build.
func LoadScanConfig(source []byte) (ScanConfig, error) {
	config := DefaultScanConfig()
	if err := utils.DecodeYAMLConfig(source, &config); err != nil {
		return ScanConfig{}, errors.Wrap(errors.ErrCodeScanConfigError, "invalid scan config", err)
	}

	if err := version.CheckConfigCompatibility(version.Version, config.Version); err != nil {
		return ScanConfig{}, errors.Wrap(errors.ErrCodeVersionMismatch, "scan config version incompatible", err)
	}

	return config, nil
}

// BuildStrategies constructs every enabled strategy in name order.
func (c ScanConfig) BuildStrategies() ([]strategy.Strategy, error) {
	names := make([]string, 0, len(c.Strategies))

	for name, entry := range c.Strategies {
		if entry.Enabled {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	strategies := make([]strategy.Strategy, 0, len(names))

	for _, name := range names {
		raw, err := entryYAML(c.Strategies[name].Config)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeScanConfigError, err, "invalid %s config block", name)
		}

		s, err := buildStrategy(name, raw)
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, s)
	}

	return strategies, nil
}

func buildStrategy(name string, raw []byte) (strategy.Strategy, error) {
	switch name {
	case strategy.NameMACrossover:
		return strategy.NewMACrossoverFromYAML(raw)
	case strategy.NameDonchian:
		return strategy.NewDonchianFromYAML(raw)
	case strategy.NameSwing:
		return strategy.NewSwingFromYAML(raw)
	case strategy.NameHTF:
		return strategy.NewHTFFromYAML(raw)
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unknown strategy %q", name)
	}
}

// entryYAML re-serializes a config node so strategy constructors can decode
// it with their own defaults. An absent node yields nil.
func entryYAML(node yaml.Node) ([]byte, error) {
	if node.Kind == 0 {
		return nil, nil
	}

	return yaml.Marshal(&node)
}
