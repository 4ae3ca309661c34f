package testutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahrav/go-tally/internal/domain"
)

// DatasetStatistics provides summary statistics about a sales dataset.
type DatasetStatistics struct {
	// Sellers, Products and Records are the collection sizes.
	Sellers  int
	Products int
	Records  int

	// Items is the number of purchase lines across all records.
	Items int

	// UnitsSold is the sum of item quantities.
	UnitsSold int

	// AvgItemsPerRecord is the average number of lines per receipt.
	AvgItemsPerRecord float64

	// SellersWithoutSales counts sellers that no record references.
	SellersWithoutSales int

	// UnknownSellerRefs and UnknownProductRefs count dangling references.
	UnknownSellerRefs  int
	UnknownProductRefs int
}

// ComputeDatasetStatistics analyzes a sales dataset and returns summary
// statistics.
func ComputeDatasetStatistics(data *domain.Dataset) *DatasetStatistics {
	stats := &DatasetStatistics{
		Sellers:  len(data.Sellers),
		Products: len(data.Products),
		Records:  len(data.PurchaseRecords),
	}

	sellers := make(map[string]bool, len(data.Sellers))
	for _, s := range data.Sellers {
		sellers[s.ID] = false
	}
	skus := make(map[string]struct{}, len(data.Products))
	for _, p := range data.Products {
		skus[p.SKU] = struct{}{}
	}

	for _, r := range data.PurchaseRecords {
		if _, ok := sellers[r.SellerID]; ok {
			sellers[r.SellerID] = true
		} else {
			stats.UnknownSellerRefs++
		}
		for _, item := range r.Items {
			stats.Items++
			stats.UnitsSold += item.Quantity
			if _, ok := skus[item.SKU]; !ok {
				stats.UnknownProductRefs++
			}
		}
	}

	for _, sold := range sellers {
		if !sold {
			stats.SellersWithoutSales++
		}
	}

	if stats.Records > 0 {
		stats.AvgItemsPerRecord = float64(stats.Items) / float64(stats.Records)
	}

	return stats
}

// SaveDataset writes a dataset to a single JSON file.
func SaveDataset(data *domain.Dataset, path string) error {
	return writeJSON(path, data)
}

// SaveDatasetDir writes a dataset as one JSON file per collection, the
// layout read by the directory loader.
func SaveDatasetDir(data *domain.Dataset, dir string) error {
	files := []struct {
		name string
		v    any
	}{
		{"sellers.json", data.Sellers},
		{"products.json", data.Products},
		{"purchase_records.json", data.PurchaseRecords},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.v); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}

	return nil
}
