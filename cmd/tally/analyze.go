package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ahrav/go-tally/infrastructure/dataset"
	"github.com/ahrav/go-tally/infrastructure/middleware"
	"github.com/ahrav/go-tally/infrastructure/report"
	"github.com/ahrav/go-tally/internal/application"
	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

func (c *cli) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a sales dataset and print the seller report",
		Long: `Loads a dataset, replays its purchase records and writes one report entry per
seller, ordered by descending profit.

The dataset is either a single JSON document (--data) holding sellers,
products and purchase_records, or a directory (--dir) with sellers.json,
products.json and purchase_records.json.

Strategies and report shape come from --config (YAML); --strict and --top
override the corresponding report settings.`,
		Example: `  tally analyze --data sales.json
  tally analyze --dir ./data --format table --top 3
  tally analyze --data sales.json --config analysis.yaml --bare --output report.json`,
		Args: cobra.NoArgs,
		RunE: c.runAnalyze,
	}

	f := cmd.Flags()
	f.String("data", "", "Dataset JSON document")
	f.String("dir", "", "Directory with one JSON file per collection")
	f.String("config", "", "Analysis configuration YAML")
	f.String("format", report.FormatJSON, "Output format: json or table")
	f.Bool("bare", false, "JSON only: write the bare seller array without the envelope")
	f.String("output", "", "Write the report to this file instead of stdout")
	f.String("metrics-file", "", "Write Prometheus metrics of the run to this file")
	f.Bool("strict", false, "Fail on purchase records referencing unknown sellers or products")
	f.Bool("validate-records", false, "Reject datasets whose records fail field validation")
	f.Int("top", 0, "Number of top products per seller (overrides the configuration)")

	return cmd
}

func (c *cli) runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := c.analysisConfig()
	if err != nil {
		return err
	}

	analyzer, opts, err := application.NewCalculatorRegistry().Build(cfg)
	if err != nil {
		return ports.NewConfigError("strategies", err)
	}

	data, err := c.loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	instrumented := middleware.NewInstrumentedAnalyzer(analyzer,
		middleware.WithMetrics(middleware.NewPrometheusMetrics(registry)),
		middleware.WithLogger(c.logger),
	)

	analysis, err := instrumented.Analyze(cmd.Context(), data, opts)
	if err != nil {
		return err
	}

	if err := c.writeReport(cmd.OutOrStdout(), analysis); err != nil {
		return err
	}

	if path := c.v.GetString("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		c.logger.Debug("metrics written", zap.String("path", path))
	}
	return nil
}

// analysisConfig loads the configuration file, if any, and applies flag
// overrides.
func (c *cli) analysisConfig() (*application.AnalysisConfig, error) {
	cfg := application.DefaultAnalysisConfig()
	if path := c.v.GetString("config"); path != "" {
		loaded, err := application.LoadConfig(path)
		if err != nil {
			return nil, ports.NewConfigError("config", err)
		}
		cfg = *loaded
	}

	if c.v.GetBool("strict") {
		cfg.Report.ReferencePolicy = application.ReferenceStrict
	}
	if top := c.v.GetInt("top"); top != 0 {
		cfg.Report.TopProducts = top
	}

	c.logger.Debug("analysis configuration",
		zap.String("revenue", cfg.Revenue.Strategy),
		zap.String("bonus", cfg.Bonus.Strategy),
		zap.Int("top_products", cfg.Report.TopProducts),
		zap.String("reference_policy", string(cfg.Report.ReferencePolicy)),
	)
	return &cfg, nil
}

// loadDataset reads the dataset named by exactly one of --data and --dir.
func (c *cli) loadDataset(ctx context.Context) (*domain.Dataset, error) {
	file, dir := c.v.GetString("data"), c.v.GetString("dir")
	switch {
	case file == "" && dir == "":
		return nil, ports.NewConfigError("data", errors.New("one of --data or --dir is required"))
	case file != "" && dir != "":
		return nil, ports.NewConfigError("data", errors.New("--data and --dir are mutually exclusive"))
	}

	source := file
	if dir != "" {
		source = dir
	}

	loader := &dataset.Loader{Strict: c.v.GetBool("validate-records")}
	data, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("dataset loaded",
		zap.String("source", source),
		zap.Int("sellers", len(data.Sellers)),
		zap.Int("products", len(data.Products)),
		zap.Int("purchase_records", len(data.PurchaseRecords)),
	)
	return data, nil
}

func (c *cli) writeReport(stdout io.Writer, analysis *application.Analysis) (err error) {
	writer, err := report.New(c.v.GetString("format"), report.WithBare(c.v.GetBool("bare")))
	if err != nil {
		return err
	}

	out := stdout
	if path := c.v.GetString("output"); path != "" {
		f, ferr := os.Create(filepath.Clean(path))
		if ferr != nil {
			return ports.NewWriteError(writer.Format(), ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = ports.NewWriteError(writer.Format(), cerr)
			}
		}()
		out = f
	}

	return writer.Write(out, report.Result{
		Sellers:  analysis.Report,
		Products: analysis.Products,
		Skipped:  analysis.Skipped,
	})
}
