package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-tally/internal/domain"
)

// TestGenerateSalesDataset tests dataset generation with a fixed seed.
func TestGenerateSalesDataset(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	data, err := GenerateSalesDataset(cfg, 42)
	require.NoError(t, err)

	assert.Len(t, data.Sellers, cfg.Sellers)
	assert.Len(t, data.Products, cfg.Products)
	assert.Len(t, data.PurchaseRecords, cfg.Records)
	assert.Equal(t, "seller_1", data.Sellers[0].ID)
	assert.Equal(t, "SKU_001", data.Products[0].SKU)

	for _, r := range data.PurchaseRecords {
		require.NotEmpty(t, r.Items)
		assert.LessOrEqual(t, len(r.Items), cfg.MaxItemsPerRecord)
		for _, item := range r.Items {
			assert.GreaterOrEqual(t, item.Quantity, 1)
			assert.LessOrEqual(t, item.Quantity, 10)
			assert.Contains(t, discounts, item.Discount)
		}
	}
	for _, p := range data.Products {
		assert.Greater(t, p.SalePrice, p.PurchasePrice, "sale price carries a markup")
	}

	stats := ComputeDatasetStatistics(data)
	assert.Zero(t, stats.UnknownSellerRefs)
	assert.Zero(t, stats.UnknownProductRefs)
}

func TestGenerateSalesDataset_Deterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	first, err := GenerateSalesDataset(cfg, 7)
	require.NoError(t, err)
	second, err := GenerateSalesDataset(cfg, 7)
	require.NoError(t, err)
	other, err := GenerateSalesDataset(cfg, 8)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestGenerateSalesDataset_UnknownReferences(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.UnknownReferenceRate = 1

	data, err := GenerateSalesDataset(cfg, 1)
	require.NoError(t, err)

	stats := ComputeDatasetStatistics(data)
	assert.Equal(t, cfg.Records, stats.UnknownSellerRefs+stats.UnknownProductRefs,
		"every record carries exactly one dangling reference")
}

func TestGenerateSalesDataset_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"no sellers", func(c *GeneratorConfig) { c.Sellers = 0 }},
		{"no products", func(c *GeneratorConfig) { c.Products = 0 }},
		{"no records", func(c *GeneratorConfig) { c.Records = 0 }},
		{"no items", func(c *GeneratorConfig) { c.MaxItemsPerRecord = 0 }},
		{"rate above one", func(c *GeneratorConfig) { c.UnknownReferenceRate = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			tt.mutate(&cfg)

			_, err := GenerateSalesDataset(cfg, 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid generator configuration")
		})
	}
}

func TestComputeDatasetStatistics(t *testing.T) {
	data := &domain.Dataset{
		Sellers:  []domain.Seller{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Products: []domain.Product{{SKU: "p1"}, {SKU: "p2"}},
		PurchaseRecords: []domain.PurchaseRecord{
			{SellerID: "a", Items: []domain.PurchaseItem{{SKU: "p1", Quantity: 2}, {SKU: "p9", Quantity: 1}}},
			{SellerID: "z", Items: []domain.PurchaseItem{{SKU: "p2", Quantity: 4}}},
			{SellerID: "a", Items: []domain.PurchaseItem{{SKU: "p2", Quantity: 1}}},
		},
	}

	stats := ComputeDatasetStatistics(data)

	assert.Equal(t, &DatasetStatistics{
		Sellers:             3,
		Products:            2,
		Records:             3,
		Items:               4,
		UnitsSold:           8,
		AvgItemsPerRecord:   4.0 / 3.0,
		SellersWithoutSales: 2,
		UnknownSellerRefs:   1,
		UnknownProductRefs:  1,
	}, stats)
}

func TestSaveDataset(t *testing.T) {
	data, err := GenerateSalesDataset(GeneratorConfig{Sellers: 2, Products: 3, Records: 4, MaxItemsPerRecord: 2}, 3)
	require.NoError(t, err)

	t.Run("single file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dataset.json")
		require.NoError(t, SaveDataset(data, path))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)

		var loaded domain.Dataset
		require.NoError(t, json.Unmarshal(raw, &loaded))
		assert.Equal(t, data, &loaded)
	})

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, SaveDatasetDir(data, dir))

		for _, name := range []string{"sellers.json", "products.json", "purchase_records.json"} {
			assert.FileExists(t, filepath.Join(dir, name))
		}
	})
}
