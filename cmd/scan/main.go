package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rxtech-lab/argo-screener/internal/datasource"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/scanner"
	"github.com/rxtech-lab/argo-screener/internal/strategy"
	"github.com/rxtech-lab/argo-screener/internal/version"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
)

// runAction loads the scan config, scans the universe and prints the
// results table.
func runAction(ctx context.Context, cmd *cli.Command) error {
	source, err := os.ReadFile(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	config, err := LoadScanConfig(source)
	if err != nil {
		return err
	}

	strategies, err := config.BuildStrategies()
	if err != nil {
		return err
	}

	if len(strategies) == 0 {
		return errors.New(errors.ErrCodeScanNoStrategies, "no strategies enabled in config")
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := datasource.NewDuckDBSource("", appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(config.Data); err != nil {
		return err
	}

	symbols := config.Universe
	if len(symbols) == 0 {
		symbols, err = db.Symbols()
		if err != nil {
			return err
		}
	}

	barCount, err := db.Count()
	if err != nil {
		return err
	}

	scan, err := scanner.NewScanner(db, strategies, config.Scanner, appLogger)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(symbols)))
	bar.Describe(fmt.Sprintf("Scanning %d symbols with %d strategies", len(symbols), len(strategies)))

	scan.OnProgress(func(done, total int, symbol string) {
		_ = bar.Add(1)
	})

	report, err := scan.RunSymbols(ctx, symbols)
	if err != nil {
		return err
	}

	_ = bar.Finish()

	printReport(os.Stdout, config, report, barCount)

	return nil
}

func printReport(out io.Writer, config ScanConfig, report scanner.Report, barCount int) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf(
		"Scan %s: %d symbols, %d bars, %d hits, %d failures (%s)",
		report.RunID, report.Symbols, barCount, len(report.Results), len(report.Failures),
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	)))

	if len(report.Results) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, HeaderStyle.Render(fmt.Sprintf(
			"%-8s %-20s %-6s %10s %10s %8s %7s  %s",
			"SYMBOL", "STRATEGY", "DIR", "ENTRY", "STOP", "RISK/SH", "SHARES", "REASON",
		)))

		equity := decimal.NewFromFloat(config.Equity)

		for _, result := range report.Results {
			shares := strategy.PositionSize(result.EntryPrice, result.StopPrice, equity, config.RiskPct, config.MaxPositionPct)

			direction := LongStyle.Render(string(result.Direction))
			if result.Direction == "short" {
				direction = ShortStyle.Render(string(result.Direction))
			}

			fmt.Fprintf(out, "%-8s %-20s %-6s %10.2f %10.2f %8.2f %7d  %s\n",
				result.Symbol, result.Strategy, direction,
				result.EntryPrice, result.StopPrice, result.RiskPerShare,
				shares, HelpStyle.Render(result.Reason),
			)
		}
	}

	for _, failure := range report.Failures {
		fmt.Fprintln(out, ErrorStyle.Render(fmt.Sprintf(
			"failed: %s/%s: %v", failure.Symbol, failure.Strategy, failure.Err,
		)))
	}
}

// schemaAction prints the JSON schema of one strategy's config block.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()

	var config any

	switch name {
	case strategy.NameMACrossover:
		config = strategy.DefaultMACrossoverConfig()
	case strategy.NameDonchian:
		config = strategy.DefaultDonchianConfig()
	case strategy.NameSwing:
		config = strategy.DefaultSwingConfig()
	case strategy.NameHTF:
		config = strategy.DefaultHTFConfig()
	case "scanner":
		config = scanner.DefaultConfig()
	default:
		return errors.Newf(errors.ErrCodeUnsupportedStrategy,
			"unknown strategy %q (expected %s, %s, %s, %s or scanner)",
			name, strategy.NameMACrossover, strategy.NameDonchian, strategy.NameSwing, strategy.NameHTF)
	}

	schema, err := utils.GetSchemaFromConfig(config)
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "scan",
		Usage:   "Scan daily bar history for rule-based trade signals",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a scan described by a YAML config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the scan config YAML file",
						Required: true,
					},
				},
				Action: runAction,
			},
			{
				Name:      "schema",
				Usage:     "Print the JSON schema of a strategy config block",
				ArgsUsage: "<strategy>",
				Action:    schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
