// Package application composes the sales analytics pipeline: input
// validation, aggregation of purchase records and ranking of sellers.
package application

import (
	"fmt"

	"github.com/ahrav/go-tally/internal/domain"
)

// Options carries the calculation strategies an analysis is parameterized
// by. Both strategies are required.
type Options struct {
	// CalculateRevenue computes the revenue of each purchase item.
	CalculateRevenue domain.RevenueFunc
	// CalculateBonus computes each seller's bonus from its profit rank.
	CalculateBonus domain.BonusFunc
}

// Analysis is the full outcome of an analysis run. Report is what
// AnalyzeSalesData returns; the remaining fields are diagnostics for
// callers that want them.
type Analysis struct {
	// Report has one entry per seller, ordered by descending profit.
	Report []domain.ReportEntry

	// Products has one entry per catalog product in catalog order, with
	// rounded monetary figures.
	Products []domain.ProductStats

	// Skipped lists records and items that referenced unknown sellers or
	// products. It is always empty under the strict reference policy.
	Skipped []domain.SkippedReference

	// RecordsProcessed and ItemsProcessed count what was accumulated.
	RecordsProcessed int
	ItemsProcessed   int
}

// Analyzer runs sales analyses with a fixed report configuration.
// An Analyzer holds no per-run state: Analyze is synchronous, re-entrant
// and safe for concurrent use.
type Analyzer struct {
	// config controls top-N selection, rounding and reference handling.
	config ReportConfig
}

// NewAnalyzer creates an Analyzer with a validated report configuration.
func NewAnalyzer(config ReportConfig) (*Analyzer, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("report configuration validation failed: %w", err)
	}
	return &Analyzer{config: config}, nil
}

// Config returns the analyzer's report configuration.
func (a *Analyzer) Config() ReportConfig { return a.config }

// Analyze validates the inputs, replays every purchase record through
// opts.CalculateRevenue and ranks sellers by profit, assigning bonuses with
// opts.CalculateBonus.
//
// Errors:
//   - domain.ErrMissingStrategy when opts or either strategy is nil
//   - domain.ErrInvalidInput when data is nil, a collection is missing or
//     empty, identifiers are duplicated, or (strict policy) a record
//     references an unknown seller or product
//
// Nothing is computed before validation passes. Panics raised by the
// strategies propagate to the caller unchanged.
func (a *Analyzer) Analyze(data *domain.Dataset, opts *Options) (*Analysis, error) {
	if err := validateInput(data, opts); err != nil {
		return nil, err
	}

	agg, err := a.aggregate(data, opts.CalculateRevenue)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Report:           a.report(agg, opts.CalculateBonus),
		Products:         a.productSummary(agg),
		Skipped:          agg.skipped,
		RecordsProcessed: agg.records,
		ItemsProcessed:   agg.items,
	}, nil
}

var defaultAnalyzer = &Analyzer{config: DefaultReportConfig()}

// AnalyzeSalesData is the single entry point of the sales analytics core.
// It analyzes data with the default report configuration (top 10 products,
// two decimal places, unknown references skipped) and returns one report
// entry per seller ordered by descending profit.
func AnalyzeSalesData(data *domain.Dataset, opts *Options) ([]domain.ReportEntry, error) {
	analysis, err := defaultAnalyzer.Analyze(data, opts)
	if err != nil {
		return nil, err
	}
	return analysis.Report, nil
}

// validateInput checks strategies first and then the dataset, failing on
// the first step that does not pass.
func validateInput(data *domain.Dataset, opts *Options) error {
	strategies := domain.NewValidationError(domain.ErrMissingStrategy, "options")
	switch {
	case opts == nil:
		strategies.AddError("calculateRevenue and calculateBonus are required")
	default:
		if opts.CalculateRevenue == nil {
			strategies.AddError("calculateRevenue is required")
		}
		if opts.CalculateBonus == nil {
			strategies.AddError("calculateBonus is required")
		}
	}
	if strategies.HasErrors() {
		return strategies
	}

	if data == nil {
		return invalidInput("data", "dataset is required")
	}
	if err := requireCollection("sellers", data.Sellers == nil, len(data.Sellers)); err != nil {
		return err
	}
	if err := requireCollection("products", data.Products == nil, len(data.Products)); err != nil {
		return err
	}
	if err := requireCollection("purchase_records", data.PurchaseRecords == nil, len(data.PurchaseRecords)); err != nil {
		return err
	}

	return validateUniqueIDs(data)
}

func requireCollection(name string, missing bool, size int) error {
	switch {
	case missing:
		return invalidInput(name, "collection is missing")
	case size == 0:
		return invalidInput(name, "collection is empty")
	}
	return nil
}

func validateUniqueIDs(data *domain.Dataset) error {
	verr := domain.NewValidationError(domain.ErrInvalidInput, "dataset")

	sellers := make(map[string]int, len(data.Sellers))
	for i, s := range data.Sellers {
		if first, dup := sellers[s.ID]; dup {
			verr.AddError(fmt.Sprintf("duplicate seller id %q at indexes %d and %d", s.ID, first, i))
			continue
		}
		sellers[s.ID] = i
	}

	skus := make(map[string]int, len(data.Products))
	for i, p := range data.Products {
		if first, dup := skus[p.SKU]; dup {
			verr.AddError(fmt.Sprintf("duplicate sku %q at indexes %d and %d", p.SKU, first, i))
			continue
		}
		skus[p.SKU] = i
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func invalidInput(entity, msg string) error {
	err := domain.NewValidationError(domain.ErrInvalidInput, entity)
	err.AddError(msg)
	return err
}
