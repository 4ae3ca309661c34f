package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
	"github.com/ahrav/go-tally/internal/testutils"
)

var (
	fixtureData   = filepath.Join("..", "..", "internal", "application", "testdata", "dataset_small.json")
	fixtureReport = filepath.Join("..", "..", "internal", "application", "testdata", "dataset_small_report.json")
)

// run executes the command tree with args and returns what it wrote to
// stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	c := &cli{v: newViper(), logger: zap.NewNop()}
	root := c.rootCmd()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

func TestAnalyzeCmd_BareMatchesReference(t *testing.T) {
	out, err := run(t, "analyze", "--data", fixtureData, "--bare")
	require.NoError(t, err)

	var got, want []domain.ReportEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	raw, err := os.ReadFile(fixtureReport)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &want))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeCmd_Document(t *testing.T) {
	out, err := run(t, "analyze", "--data", fixtureData)
	require.NoError(t, err)

	var doc struct {
		RunID   string                    `json:"run_id"`
		Sellers []domain.ReportEntry      `json:"sellers"`
		Skipped []domain.SkippedReference `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.NotEmpty(t, doc.RunID)
	assert.Len(t, doc.Sellers, 6)
	assert.Len(t, doc.Skipped, 2)
}

func TestAnalyzeCmd_Options(t *testing.T) {
	t.Run("table format", func(t *testing.T) {
		out, err := run(t, "analyze", "--data", fixtureData, "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "Alexey Petrov")
		assert.Contains(t, out, "1,232.96")
		assert.Contains(t, out, "did you mean seller_1?")
	})

	t.Run("top override", func(t *testing.T) {
		out, err := run(t, "analyze", "--data", fixtureData, "--bare", "--top", "1")
		require.NoError(t, err)

		var got []domain.ReportEntry
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		for _, e := range got {
			assert.LessOrEqual(t, len(e.TopProducts), 1)
		}
	})

	t.Run("strict fails on unknown references", func(t *testing.T) {
		_, err := run(t, "analyze", "--data", fixtureData, "--strict")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrUnknownSeller)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "analysis.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
version: "1.0.0"
bonus:
  strategy: profit_tiers
  parameters:
    top_rate: 0.5
`), 0o600))

		out, err := run(t, "analyze", "--data", fixtureData, "--bare", "--config", path)
		require.NoError(t, err)

		var got []domain.ReportEntry
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 195.75, got[0].Bonus, "half of 391.5")
	})

	t.Run("output and metrics files", func(t *testing.T) {
		dir := t.TempDir()
		output := filepath.Join(dir, "report.json")
		metrics := filepath.Join(dir, "metrics.prom")

		out, err := run(t, "analyze", "--data", fixtureData, "--output", output, "--metrics-file", metrics)
		require.NoError(t, err)
		assert.Empty(t, out)

		assert.FileExists(t, output)
		prom, err := os.ReadFile(metrics)
		require.NoError(t, err)
		assert.Contains(t, string(prom), `tally_skipped_references_total{reference="seller"} 1`)
		assert.Contains(t, string(prom), `tally_replayed_total{kind="records"} 10`)
	})

	t.Run("directory source", func(t *testing.T) {
		data, err := testutils.GenerateSalesDataset(testutils.DefaultGeneratorConfig(), 11)
		require.NoError(t, err)
		dir := t.TempDir()
		require.NoError(t, testutils.SaveDatasetDir(data, dir))

		out, err := run(t, "analyze", "--dir", dir, "--bare")
		require.NoError(t, err)

		var got []domain.ReportEntry
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Len(t, got, len(data.Sellers))
	})
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		errMsg  string
	}{
		{
			name:   "no source",
			args:   []string{"analyze"},
			errMsg: "one of --data or --dir is required",
		},
		{
			name:   "both sources",
			args:   []string{"analyze", "--data", fixtureData, "--dir", "."},
			errMsg: "mutually exclusive",
		},
		{
			name:    "missing file",
			args:    []string{"analyze", "--data", "does-not-exist.json"},
			wantErr: ports.ErrSourceNotFound,
		},
		{
			name:    "unknown format",
			args:    []string{"analyze", "--data", fixtureData, "--format", "xml"},
			wantErr: ports.ErrUnsupportedFormat,
		},
		{
			name:   "top out of range",
			args:   []string{"analyze", "--data", fixtureData, "--top", "500"},
			errMsg: "report configuration validation failed",
		},
		{
			name:   "missing config",
			args:   []string{"analyze", "--data", fixtureData, "--config", "missing.yaml"},
			errMsg: "config error: key=config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateCmd(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		out, err := run(t, "validate", "--data", fixtureData)
		require.NoError(t, err)
		assert.Equal(t, "ok: 6 sellers, 12 products, 11 purchase records\n", out)
	})

	t.Run("invalid records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "sellers": [{"id": ""}],
  "products": [{"sku": "p", "purchase_price": 1}],
  "purchase_records": [{"seller_id": "s", "items": [{"sku": "p", "sale_price": 1, "quantity": 0}]}]
}`), 0o600))

		_, err := run(t, "validate", "--data", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "sellers[0].id is required")
		assert.Contains(t, err.Error(), "purchase_records[0].items[0].quantity must be gt 0")
	})
}

func TestStrategiesCmd(t *testing.T) {
	out, err := run(t, "strategies")
	require.NoError(t, err)
	assert.Equal(t, "revenue: [simple]\nbonus: [profit_tiers]\n", out)
}
