// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import "github.com/ahrav/go-tally/internal/domain"

// RevenueCalculator is a named, configurable revenue strategy.
// Its Revenue method value satisfies domain.RevenueFunc.
// Calculators should be stateless and safe for concurrent use.
type RevenueCalculator interface {
	// Name returns the strategy name the calculator was registered under.
	Name() string

	// Revenue computes the revenue of a single purchase item.
	Revenue(item domain.PurchaseItem, product domain.Product) float64

	// Validate checks that the calculator is properly configured.
	Validate() error
}

// BonusCalculator is a named, configurable bonus strategy.
// Its Bonus method value satisfies domain.BonusFunc.
type BonusCalculator interface {
	// Name returns the strategy name the calculator was registered under.
	Name() string

	// Bonus computes the bonus for the seller ranked at rank out of total.
	Bonus(rank, total int, seller domain.SellerStats) float64

	// Validate checks that the calculator is properly configured.
	Validate() error
}

// RevenueCalculatorFactory builds a RevenueCalculator from raw parameters,
// typically decoded from YAML.
type RevenueCalculatorFactory func(params map[string]any) (RevenueCalculator, error)

// BonusCalculatorFactory builds a BonusCalculator from raw parameters.
type BonusCalculatorFactory func(params map[string]any) (BonusCalculator, error)
