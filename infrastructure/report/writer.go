// Package report renders analysis results for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

// Output formats understood by New.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Result is what a Writer renders: the ranked report plus the
// diagnostics of the run that produced it.
type Result struct {
	Sellers  []domain.ReportEntry
	Products []domain.ProductStats
	Skipped  []domain.SkippedReference
}

// Writer renders a Result to w.
type Writer interface {
	Format() string
	Write(w io.Writer, result Result) error
}

// Summary holds the report-wide totals. Totals are summed from the
// rounded per-seller figures so that they add up in the rendered output.
type Summary struct {
	Sellers      int             `json:"sellers"`
	Skipped      int             `json:"skipped_references"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	TotalBonus   decimal.Decimal `json:"total_bonus"`
}

// Summarize computes the totals of result.
func Summarize(result Result) Summary {
	s := Summary{
		Sellers: len(result.Sellers),
		Skipped: len(result.Skipped),
	}
	for _, e := range result.Sellers {
		s.TotalRevenue = s.TotalRevenue.Add(decimal.NewFromFloat(e.Revenue))
		s.TotalProfit = s.TotalProfit.Add(decimal.NewFromFloat(e.Profit))
		s.TotalBonus = s.TotalBonus.Add(decimal.NewFromFloat(e.Bonus))
	}
	return s
}

// New returns the writer for format. Options apply to the JSON writer only.
func New(format string, opts ...JSONOption) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSONWriter(opts...), nil
	case FormatTable:
		return NewTableWriter(), nil
	default:
		return nil, ports.NewWriteError(format, fmt.Errorf("%w: %q", ports.ErrUnsupportedFormat, format))
	}
}
