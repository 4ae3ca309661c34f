package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

var _ Writer = (*TableWriter)(nil)

// TableWriter renders the seller report as an aligned text table with
// locale-aware number formatting, followed by totals and any skipped
// references.
type TableWriter struct {
	lang language.Tag
}

// NewTableWriter creates a TableWriter formatting numbers for English.
func NewTableWriter() *TableWriter {
	return &TableWriter{lang: language.English}
}

// WithLanguage returns a copy of w that formats numbers for lang.
func (w *TableWriter) WithLanguage(lang language.Tag) *TableWriter {
	return &TableWriter{lang: lang}
}

// Format returns FormatTable.
func (w *TableWriter) Format() string { return FormatTable }

// Write renders result to out.
func (w *TableWriter) Write(out io.Writer, result Result) error {
	p := message.NewPrinter(w.lang)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	p.Fprintf(tw, "RANK\tSELLER\tNAME\tREVENUE\tPROFIT\tSALES\tBONUS\tTOP PRODUCTS\t\n")
	for rank, e := range result.Sellers {
		p.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%d\t%.2f\t%s\t\n",
			rank+1, e.SellerID, e.Name, e.Revenue, e.Profit, e.SalesCount, e.Bonus, topList(e.TopProducts))
	}

	s := Summarize(result)
	p.Fprintf(tw, "\tTOTAL\t\t%.2f\t%.2f\t\t%.2f\t\t\n",
		s.TotalRevenue.InexactFloat64(), s.TotalProfit.InexactFloat64(), s.TotalBonus.InexactFloat64())

	if err := tw.Flush(); err != nil {
		return ports.NewWriteError(FormatTable, err)
	}

	if len(result.Skipped) == 0 {
		return nil
	}

	p.Fprintf(out, "\nskipped %d unknown reference(s):\n", len(result.Skipped))
	for _, ref := range result.Skipped {
		if _, err := io.WriteString(out, "  "+describeSkipped(ref)+"\n"); err != nil {
			return ports.NewWriteError(FormatTable, err)
		}
	}
	return nil
}

func topList(top []domain.TopProduct) string {
	if len(top) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(top))
	for _, t := range top {
		parts = append(parts, t.SKU+":"+strconv.Itoa(t.Quantity))
	}
	return strings.Join(parts, " ")
}

func describeSkipped(ref domain.SkippedReference) string {
	msg := fmt.Sprintf("%s %s in record %d", ref.Kind, ref.ID, ref.RecordIndex)
	if ref.ItemIndex >= 0 {
		msg += fmt.Sprintf(" item %d", ref.ItemIndex)
	}
	if ref.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", ref.Suggestion)
	}
	return msg
}
