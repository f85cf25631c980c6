package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/warrenlab/warren/internal/analyzer"
	"github.com/warrenlab/warren/internal/cache"
	"github.com/warrenlab/warren/internal/config"
	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/internal/render"
	"github.com/warrenlab/warren/internal/server"
	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/internal/version"
	"github.com/warrenlab/warren/pkg/marketdata"
)

func loadConfig(cmd *cli.Command) (config.Config, error) {
	return config.Load(cmd.String("config"))
}

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("verbose") {
		return logger.NewDevelopmentLogger()
	}

	return logger.NewLogger()
}

func newAnalyzer(cfg config.Config, log *logger.Logger) (*analyzer.Analyzer, error) {
	provider, err := marketdata.NewProvider(cfg.Provider, log)
	if err != nil {
		return nil, err
	}

	return analyzer.NewAnalyzer(provider, analyzer.Config{
		Indicators: cfg.Indicators,
		Weights:    cfg.Weights,
	}, cache.NewMemoryCache(cfg.Cache.TTL.Std()), log)
}

// analyzeAction runs a one-shot analysis and prints the rendered report.
func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	period, err := marketdata.ParsePeriod(cmd.String("period"))
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := newAnalyzer(cfg, log)
	if err != nil {
		return err
	}

	report, err := a.AnalyzeStock(ctx, cmd.String("ticker"), period)
	if err != nil {
		return err
	}

	out, err := renderReport(report, cmd.Bool("json"))
	if err != nil {
		return err
	}

	fmt.Println(out)

	return nil
}

// renderReport picks between the styled terminal view and plain JSON.
func renderReport(report types.Report, asJSON bool) (string, error) {
	if asJSON {
		return render.JSON(report)
	}

	return render.NewRenderer().Render(report), nil
}

// fetchAction downloads daily bars into the local Parquet store.
func fetchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	period, err := marketdata.ParsePeriod(cmd.String("period"))
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Fetch always reads from Polygon, regardless of the configured
	// analysis provider.
	providerConfig := cfg.Provider
	providerConfig.Type = marketdata.ProviderPolygon

	provider, err := marketdata.NewProvider(providerConfig, log)
	if err != nil {
		return err
	}

	downloader := marketdata.NewDownloader(provider, log)

	for _, ticker := range cmd.StringSlice("ticker") {
		path, err := downloader.Download(ctx, ticker, period, cfg.Provider.DataPath)
		if err != nil {
			return err
		}

		fmt.Printf("\nwrote %s\n", path)
	}

	return nil
}

// serveAction runs the HTTP analysis server until interrupted.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if address := cmd.String("address"); address != "" {
		cfg.Server.Address = address
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := newAnalyzer(cfg, log)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.Server.Address, a, log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the YAML config file",
	}
	verboseFlag := &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logging",
	}
	periodFlag := &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Trailing lookback, e.g. 6m, 1y, 2y",
		Value:   string(marketdata.PeriodOneYear),
	}

	cmd := &cli.Command{
		Name:    "warren",
		Usage:   "Technical, fundamental and dividend analysis for stocks",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Analyze a ticker and print the report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ticker",
						Aliases:  []string{"t"},
						Usage:    "Stock ticker symbol",
						Required: true,
					},
					periodFlag,
					configFlag,
					verboseFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the report as JSON instead of the styled view",
					},
				},
				Action: analyzeAction,
			},
			{
				Name:  "fetch",
				Usage: "Download daily bars into the local Parquet store",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "ticker",
						Aliases:  []string{"t"},
						Usage:    "Stock ticker symbol (repeatable)",
						Required: true,
					},
					periodFlag,
					configFlag,
					verboseFlag,
				},
				Action: fetchAction,
			},
			{
				Name:  "serve",
				Usage: "Serve analysis reports over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "address",
						Aliases: []string{"a"},
						Usage:   "Listen address, overrides the config value",
					},
					configFlag,
					verboseFlag,
				},
				Action: serveAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
