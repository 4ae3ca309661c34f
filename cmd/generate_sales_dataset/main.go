package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ahrav/go-tally/internal/testutils"
)

func main() {
	defaults := testutils.DefaultGeneratorConfig()
	var (
		sellers    = flag.Int("sellers", defaults.Sellers, "Number of sellers to generate")
		products   = flag.Int("products", defaults.Products, "Number of catalog products")
		records    = flag.Int("records", defaults.Records, "Number of purchase records")
		maxItems   = flag.Int("max-items", defaults.MaxItemsPerRecord, "Maximum items per purchase record")
		unknown    = flag.Float64("unknown-rate", 0, "Share of records carrying an unknown seller or SKU")
		seed       = flag.Int64("seed", 0, "Random seed (0 uses the current time)")
		outputPath = flag.String("output", "testdata/sales_dataset/dataset.json", "Output file path")
		split      = flag.Bool("split", false, "Write one file per collection into the output directory")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	cfg := testutils.GeneratorConfig{
		Sellers:              *sellers,
		Products:             *products,
		Records:              *records,
		MaxItemsPerRecord:    *maxItems,
		UnknownReferenceRate: *unknown,
	}

	data, err := testutils.GenerateSalesDataset(cfg, *seed)
	if err != nil {
		log.Fatalf("Failed to generate dataset: %v", err)
	}

	if *split {
		err = testutils.SaveDatasetDir(data, *outputPath)
	} else {
		err = testutils.SaveDataset(data, *outputPath)
	}
	if err != nil {
		log.Fatalf("Failed to save dataset: %v", err)
	}

	stats := testutils.ComputeDatasetStatistics(data)

	fmt.Printf("Generated sales dataset:\n")
	fmt.Printf("- Path: %s\n", *outputPath)
	fmt.Printf("- Seed: %d\n", *seed)
	fmt.Printf("- Sellers: %d (%d without sales)\n", stats.Sellers, stats.SellersWithoutSales)
	fmt.Printf("- Products: %d\n", stats.Products)
	fmt.Printf("- Purchase records: %d\n", stats.Records)
	fmt.Printf("- Units sold: %d\n", stats.UnitsSold)
	fmt.Printf("- Average items per record: %.2f\n", stats.AvgItemsPerRecord)
	if stats.UnknownSellerRefs+stats.UnknownProductRefs > 0 {
		fmt.Printf("- Unknown references: %d sellers, %d products\n", stats.UnknownSellerRefs, stats.UnknownProductRefs)
	}
	fmt.Printf("\nDataset saved successfully!\n")
}
