// Package testutils provides utilities for testing, including synthetic
// sales dataset generators. These components are intended for internal use
// within the project's test suites and tools and are not part of the public
// API.
package testutils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ahrav/go-tally/internal/domain"
)

// GeneratorConfig controls the shape of a generated dataset.
type GeneratorConfig struct {
	// Sellers is the number of sellers on staff.
	Sellers int `validate:"min=1,max=10000"`

	// Products is the size of the catalog.
	Products int `validate:"min=1,max=100000"`

	// Records is the number of purchase records.
	Records int `validate:"min=1,max=1000000"`

	// MaxItemsPerRecord bounds the lines on a receipt.
	MaxItemsPerRecord int `validate:"min=1,max=100"`

	// UnknownReferenceRate is the share of records whose seller, or one of
	// whose items, references an identifier that is not in the dataset.
	UnknownReferenceRate float64 `validate:"min=0,max=1"`
}

// DefaultGeneratorConfig returns a small, fully consistent dataset shape.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Sellers:           5,
		Products:          50,
		Records:           200,
		MaxItemsPerRecord: 5,
	}
}

var (
	validate  = validator.New()
	discounts = []float64{0, 0, 0, 5, 10, 15, 20}
)

// GenerateSalesDataset creates a synthetic dataset.
// The seed parameter controls randomization - use time.Now().UnixNano() for
// non-deterministic generation or a fixed value for reproducible tests.
func GenerateSalesDataset(cfg GeneratorConfig, seed int64) (*domain.Dataset, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid generator configuration: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	data := &domain.Dataset{
		Sellers:         make([]domain.Seller, 0, cfg.Sellers),
		Products:        make([]domain.Product, 0, cfg.Products),
		PurchaseRecords: make([]domain.PurchaseRecord, 0, cfg.Records),
	}

	for i := range cfg.Sellers {
		data.Sellers = append(data.Sellers, domain.Seller{
			ID:        fmt.Sprintf("seller_%d", i+1),
			FirstName: FirstNames[rng.Intn(len(FirstNames))],
			LastName:  LastNames[rng.Intn(len(LastNames))],
			StartDate: start.AddDate(0, -rng.Intn(60), 0).Format(time.DateOnly),
			Position:  Positions[rng.Intn(len(Positions))],
		})
	}

	for i := range cfg.Products {
		purchase := money(0.5 + rng.Float64()*99.5)
		data.Products = append(data.Products, domain.Product{
			SKU:           fmt.Sprintf("SKU_%03d", i+1),
			Name:          ProductNames[rng.Intn(len(ProductNames))],
			Category:      Categories[rng.Intn(len(Categories))],
			PurchasePrice: purchase,
			SalePrice:     money(purchase * (1.1 + rng.Float64()*0.5)),
		})
	}

	for i := range cfg.Records {
		seller := data.Sellers[rng.Intn(len(data.Sellers))]
		record := domain.PurchaseRecord{
			ReceiptID:  fmt.Sprintf("receipt_%d", i+1),
			Date:       start.AddDate(0, 0, rng.Intn(365)).Format(time.DateOnly),
			SellerID:   seller.ID,
			CustomerID: fmt.Sprintf("customer_%d", rng.Intn(cfg.Records)+1),
		}

		lines := rng.Intn(cfg.MaxItemsPerRecord) + 1
		for range lines {
			product := data.Products[rng.Intn(len(data.Products))]
			item := domain.PurchaseItem{
				SKU:       product.SKU,
				SalePrice: product.SalePrice,
				Quantity:  rng.Intn(10) + 1,
				Discount:  discounts[rng.Intn(len(discounts))],
			}
			record.Items = append(record.Items, item)

			gross := decimal.NewFromFloat(item.SalePrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
			off := gross.Mul(decimal.NewFromFloat(item.Discount)).Div(decimal.NewFromInt(100))
			record.TotalAmount = decimal.NewFromFloat(record.TotalAmount).Add(gross.Sub(off)).Round(2).InexactFloat64()
			record.TotalDiscount = decimal.NewFromFloat(record.TotalDiscount).Add(off).Round(2).InexactFloat64()
		}

		if cfg.UnknownReferenceRate > 0 && rng.Float64() < cfg.UnknownReferenceRate {
			corrupt(rng, &record)
		}
		data.PurchaseRecords = append(data.PurchaseRecords, record)
	}

	return data, nil
}

// corrupt points the record, or one of its items, at an identifier that is
// one character away from a real one.
func corrupt(rng *rand.Rand, record *domain.PurchaseRecord) {
	if rng.Intn(2) == 0 {
		record.SellerID = "x" + record.SellerID
		return
	}
	i := rng.Intn(len(record.Items))
	record.Items[i].SKU += "X"
}

func money(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
