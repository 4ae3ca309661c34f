package calculators

import (
	"fmt"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

var (
	_ ports.RevenueCalculator = SimpleRevenueCalculator{}
	_ domain.RevenueFunc      = SimpleRevenue
)

// SimpleRevenue returns the revenue of a purchase item after its discount:
//
//	sale_price * quantity * (1 - discount/100)
//
// The discount is a percentage. The product is not consulted; the parameter
// exists so that SimpleRevenue satisfies domain.RevenueFunc.
func SimpleRevenue(item domain.PurchaseItem, _ domain.Product) float64 {
	gross := float64(item.SalePrice * float64(item.Quantity))
	return gross * (1 - item.Discount/100)
}

// SimpleRevenueCalculator exposes SimpleRevenue as a registrable strategy.
type SimpleRevenueCalculator struct{}

// Name returns the strategy name.
func (SimpleRevenueCalculator) Name() string { return SimpleRevenueName }

// Revenue implements ports.RevenueCalculator.
func (SimpleRevenueCalculator) Revenue(item domain.PurchaseItem, product domain.Product) float64 {
	return SimpleRevenue(item, product)
}

// Validate implements ports.RevenueCalculator. The calculator has no
// configuration, so it is always valid.
func (SimpleRevenueCalculator) Validate() error { return nil }

// NewSimpleRevenueFromConfig creates a SimpleRevenueCalculator from a
// configuration map. This is the boundary adapter for YAML configuration;
// any parameter is rejected.
func NewSimpleRevenueFromConfig(params map[string]any) (ports.RevenueCalculator, error) {
	if len(params) > 0 {
		return nil, fmt.Errorf("%w: %s got %d", ErrUnexpectedParameters, SimpleRevenueName, len(params))
	}
	return SimpleRevenueCalculator{}, nil
}
