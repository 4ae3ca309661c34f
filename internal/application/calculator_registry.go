package application

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ahrav/go-tally/infrastructure/calculators"
	"github.com/ahrav/go-tally/internal/ports"
)

// CalculatorRegistry is a factory for revenue and bonus calculators keyed
// by strategy name. It comes with the built-in strategies registered and
// can be extended at runtime.
type CalculatorRegistry struct {
	// revenue and bonus map strategy names to their factory functions.
	revenue map[string]ports.RevenueCalculatorFactory
	bonus   map[string]ports.BonusCalculatorFactory
	// mu protects concurrent access to the factory maps.
	mu sync.RWMutex
}

// NewCalculatorRegistry creates a registry with the "simple" revenue
// strategy and the "profit_tiers" bonus strategy registered.
func NewCalculatorRegistry() *CalculatorRegistry {
	r := &CalculatorRegistry{
		revenue: make(map[string]ports.RevenueCalculatorFactory),
		bonus:   make(map[string]ports.BonusCalculatorFactory),
	}
	r.revenue[calculators.SimpleRevenueName] = calculators.NewSimpleRevenueFromConfig
	r.bonus[calculators.ProfitTiersName] = calculators.NewProfitTiersFromConfig
	return r
}

// CreateRevenue builds the revenue calculator registered under name.
func (r *CalculatorRegistry) CreateRevenue(name string, params map[string]any) (ports.RevenueCalculator, error) {
	r.mu.RLock()
	factory, exists := r.revenue[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported revenue strategy: %s", name)
	}

	calc, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create revenue strategy %s: %w", name, err)
	}
	if err := calc.Validate(); err != nil {
		return nil, fmt.Errorf("revenue strategy %s is invalid: %w", name, err)
	}
	return calc, nil
}

// CreateBonus builds the bonus calculator registered under name.
func (r *CalculatorRegistry) CreateBonus(name string, params map[string]any) (ports.BonusCalculator, error) {
	r.mu.RLock()
	factory, exists := r.bonus[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported bonus strategy: %s", name)
	}

	calc, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create bonus strategy %s: %w", name, err)
	}
	if err := calc.Validate(); err != nil {
		return nil, fmt.Errorf("bonus strategy %s is invalid: %w", name, err)
	}
	return calc, nil
}

// RegisterRevenue registers a revenue factory, replacing any previous
// factory with the same name.
func (r *CalculatorRegistry) RegisterRevenue(name string, factory ports.RevenueCalculatorFactory) error {
	if name == "" {
		return fmt.Errorf("strategy name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.revenue[name] = factory
	return nil
}

// RegisterBonus registers a bonus factory, replacing any previous factory
// with the same name.
func (r *CalculatorRegistry) RegisterBonus(name string, factory ports.BonusCalculatorFactory) error {
	if name == "" {
		return fmt.Errorf("strategy name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bonus[name] = factory
	return nil
}

// SupportedStrategies returns the sorted names of the registered revenue
// and bonus strategies.
func (r *CalculatorRegistry) SupportedStrategies() (revenue, bonus []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name := range r.revenue {
		revenue = append(revenue, name)
	}
	for name := range r.bonus {
		bonus = append(bonus, name)
	}
	slices.Sort(revenue)
	slices.Sort(bonus)
	return revenue, bonus
}

// Build turns an AnalysisConfig into a ready Analyzer and the Options
// carrying the configured strategies.
func (r *CalculatorRegistry) Build(cfg *AnalysisConfig) (*Analyzer, *Options, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("analysis configuration is required")
	}

	revenue, err := r.CreateRevenue(cfg.Revenue.Strategy, cfg.Revenue.Parameters)
	if err != nil {
		return nil, nil, err
	}
	bonus, err := r.CreateBonus(cfg.Bonus.Strategy, cfg.Bonus.Parameters)
	if err != nil {
		return nil, nil, err
	}
	analyzer, err := NewAnalyzer(cfg.Report)
	if err != nil {
		return nil, nil, err
	}

	return analyzer, &Options{
		CalculateRevenue: revenue.Revenue,
		CalculateBonus:   bonus.Bonus,
	}, nil
}
