// Package scanner fans a set of strategies out over a symbol universe and
// collects the latest-bar signals into a run report.
package scanner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-screener/internal/datasource"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/strategy"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/utils"
	"go.uber.org/zap"
)

// Config controls a scan run. The risk filter is inclusive on both ends;
// a zero MaxRiskPerShare disables the upper bound.
type Config struct {
	// Workers is the number of concurrent symbol workers. Zero picks the
	// default.
	Workers int `yaml:"workers" json:"workers" jsonschema:"title=Workers" validate:"gte=0"`
	// MinRiskPerShare drops results whose per-share risk is below this
	// value. Zero-risk results are dropped by any positive minimum.
	MinRiskPerShare float64 `yaml:"min_risk_per_share" json:"minRiskPerShare" jsonschema:"title=Min Risk Per Share" validate:"gte=0"`
	// MaxRiskPerShare drops results whose per-share risk exceeds this
	// value. Zero disables the bound.
	MaxRiskPerShare float64 `yaml:"max_risk_per_share" json:"maxRiskPerShare" jsonschema:"title=Max Risk Per Share" validate:"gte=0"`
	// MinBars is the minimum history length a symbol must have. Shorter
	// symbols are reported as failures instead of being evaluated. Zero
	// disables the gate.
	MinBars int `yaml:"min_bars" json:"minBars" jsonschema:"title=Min Bars" validate:"gte=0"`
}

// DefaultConfig returns the default scan configuration.
func DefaultConfig() Config {
	return Config{
		Workers:         8,
		MinRiskPerShare: 0,
		MaxRiskPerShare: 0,
	}
}

// Failure records one (symbol, strategy) evaluation that did not produce
// a result.
type Failure struct {
	Symbol   string
	Strategy string
	Err      error
}

// Report is the outcome of one scan run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Symbols    int
	Results    []types.ScanResult
	Failures   []Failure
}

// ProgressFunc is called after each symbol completes.
type ProgressFunc func(done, total int, symbol string)

// Scanner runs strategies over the symbols of a data source. Symbols are
// processed concurrently; each evaluation is independent and shares no
// mutable state with the others.
type Scanner struct {
	source     datasource.Source
	strategies []strategy.Strategy
	config     Config
	logger     *logger.Logger
	onProgress ProgressFunc
}

// NewScanner creates a scanner and validates its configuration.
func NewScanner(source datasource.Source, strategies []strategy.Strategy, config Config, log *logger.Logger) (*Scanner, error) {
	if source == nil {
		return nil, errors.New(errors.ErrCodeScanNoDatasource, "scanner requires a data source")
	}

	if len(strategies) == 0 {
		return nil, errors.New(errors.ErrCodeScanNoStrategies, "scanner requires at least one strategy")
	}

	if err := utils.DecodeYAMLConfig(nil, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeScanConfigError, "invalid scanner config", err)
	}

	if config.MaxRiskPerShare > 0 && config.MinRiskPerShare > config.MaxRiskPerShare {
		return nil, errors.Newf(errors.ErrCodeScanInvalidFilter,
			"min risk per share (%v) exceeds max (%v)", config.MinRiskPerShare, config.MaxRiskPerShare)
	}

	if config.Workers == 0 {
		config.Workers = DefaultConfig().Workers
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Scanner{
		source:     source,
		strategies: strategies,
		config:     config,
		logger:     log,
	}, nil
}

// OnProgress registers a progress callback. Call before Run; the callback
// is invoked from worker goroutines.
func (s *Scanner) OnProgress(fn ProgressFunc) {
	s.onProgress = fn
}

// Run scans every symbol of the source with every strategy. Per-symbol
// failures do not abort the run; they are collected on the report. Run
// returns early with the context error when the context is canceled.
func (s *Scanner) Run(ctx context.Context) (Report, error) {
	symbols, err := s.source.Symbols()
	if err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeScanFailed, "failed to list symbols", err)
	}

	return s.RunSymbols(ctx, symbols)
}

// RunSymbols scans an explicit symbol universe instead of the source's
// full symbol list.
func (s *Scanner) RunSymbols(ctx context.Context, symbols []string) (Report, error) {
	if len(symbols) == 0 {
		return Report{}, errors.New(errors.ErrCodeScanNoSymbols, "scan universe is empty")
	}

	report := Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Symbols:   len(symbols),
	}

	s.logger.Info("starting scan",
		zap.String("run_id", report.RunID),
		zap.Int("symbols", len(symbols)),
		zap.Int("strategies", len(s.strategies)),
		zap.Int("workers", s.config.Workers),
	)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		done     int
		results  []types.ScanResult
		failures []Failure
	)

	jobs := make(chan string)

	for w := 0; w < s.config.Workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for symbol := range jobs {
				symbolResults, symbolFailures := s.scanSymbol(symbol)

				mu.Lock()
				results = append(results, symbolResults...)
				failures = append(failures, symbolFailures...)
				done++
				progress := done
				mu.Unlock()

				if s.onProgress != nil {
					s.onProgress(progress, len(symbols), symbol)
				}
			}
		}()
	}

	canceled := false

feed:
	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			canceled = true

			break feed
		case jobs <- symbol:
		}
	}

	close(jobs)
	wg.Wait()

	if canceled {
		return Report{}, ctx.Err()
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Symbol != results[j].Symbol {
			return results[i].Symbol < results[j].Symbol
		}

		return results[i].Strategy < results[j].Strategy
	})

	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Symbol != failures[j].Symbol {
			return failures[i].Symbol < failures[j].Symbol
		}

		return failures[i].Strategy < failures[j].Strategy
	})

	report.Results = results
	report.Failures = failures
	report.FinishedAt = time.Now()

	s.logger.Info("scan finished",
		zap.String("run_id", report.RunID),
		zap.Int("results", len(results)),
		zap.Int("failures", len(failures)),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)

	return report, nil
}

// scanSymbol fetches one symbol's history and evaluates every strategy on
// it. A panicking strategy is reported as a failure for that pair only.
func (s *Scanner) scanSymbol(symbol string) (results []types.ScanResult, failures []Failure) {
	series, err := s.source.GetBarSeries(symbol)
	if err != nil {
		for _, strat := range s.strategies {
			failures = append(failures, Failure{Symbol: symbol, Strategy: strat.Name(), Err: err})
		}

		return results, failures
	}

	if s.config.MinBars > 0 && series.Len() < s.config.MinBars {
		err := errors.Wrap(errors.ErrCodeInsufficientData, "history shorter than scan minimum",
			errors.NewInsufficientDataErrorf(s.config.MinBars, series.Len(), symbol,
				"%s has %d bars, need %d", symbol, series.Len(), s.config.MinBars))

		for _, strat := range s.strategies {
			failures = append(failures, Failure{Symbol: symbol, Strategy: strat.Name(), Err: err})
		}

		return results, failures
	}

	for _, strat := range s.strategies {
		result, err := s.evaluate(strat, series)
		if err != nil {
			s.logger.Warn("strategy evaluation failed",
				zap.String("symbol", symbol),
				zap.String("strategy", strat.Name()),
				zap.Error(err),
			)

			failures = append(failures, Failure{Symbol: symbol, Strategy: strat.Name(), Err: err})

			continue
		}

		if result == nil || !s.passesRiskFilter(*result) {
			continue
		}

		results = append(results, *result)
	}

	return results, failures
}

func (s *Scanner) evaluate(strat strategy.Strategy, series types.BarSeries) (result *types.ScanResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Newf(errors.ErrCodeScanFailed, "strategy %s panicked on %s: %v", strat.Name(), series.Symbol, r)
		}
	}()

	hit, err := strategy.LatestSignal(strat, series)
	if err != nil {
		return nil, err
	}

	if hit.IsNone() {
		return nil, nil
	}

	value := hit.Unwrap()

	return &value, nil
}

// passesRiskFilter applies the inclusive per-share risk bounds.
func (s *Scanner) passesRiskFilter(result types.ScanResult) bool {
	if result.RiskPerShare < s.config.MinRiskPerShare {
		return false
	}

	if s.config.MaxRiskPerShare > 0 && result.RiskPerShare > s.config.MaxRiskPerShare {
		return false
	}

	return true
}
