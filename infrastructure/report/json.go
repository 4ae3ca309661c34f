package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

var _ Writer = (*JSONWriter)(nil)

// Document is the JSON envelope written by JSONWriter.
type Document struct {
	RunID       uuid.UUID                 `json:"run_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Summary     Summary                   `json:"summary"`
	Sellers     []domain.ReportEntry      `json:"sellers"`
	Products    []domain.ProductStats     `json:"products,omitempty"`
	Skipped     []domain.SkippedReference `json:"skipped,omitempty"`
}

// JSONWriter writes results as indented JSON.
type JSONWriter struct {
	bare   bool
	indent string
	now    func() time.Time
	newID  func() uuid.UUID
}

// JSONOption configures a JSONWriter.
type JSONOption func(*JSONWriter)

// WithBare makes the writer emit only the seller report array, without the
// Document envelope.
func WithBare(bare bool) JSONOption {
	return func(w *JSONWriter) { w.bare = bare }
}

// WithIndent sets the indentation; an empty string writes compact JSON.
func WithIndent(indent string) JSONOption {
	return func(w *JSONWriter) { w.indent = indent }
}

// WithClock replaces the time source used for GeneratedAt.
func WithClock(now func() time.Time) JSONOption {
	return func(w *JSONWriter) { w.now = now }
}

// WithRunID replaces the run identifier generator.
func WithRunID(newID func() uuid.UUID) JSONOption {
	return func(w *JSONWriter) { w.newID = newID }
}

// NewJSONWriter creates a JSONWriter. By default it writes a Document
// indented by two spaces.
func NewJSONWriter(opts ...JSONOption) *JSONWriter {
	w := &JSONWriter{
		indent: "  ",
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Format returns FormatJSON.
func (w *JSONWriter) Format() string { return FormatJSON }

// Write encodes result to out.
func (w *JSONWriter) Write(out io.Writer, result Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", w.indent)

	var v any = result.Sellers
	if !w.bare {
		v = Document{
			RunID:       w.newID(),
			GeneratedAt: w.now().UTC(),
			Summary:     Summarize(result),
			Sellers:     result.Sellers,
			Products:    result.Products,
			Skipped:     result.Skipped,
		}
	}

	if err := enc.Encode(v); err != nil {
		return ports.NewWriteError(FormatJSON, err)
	}
	return nil
}
