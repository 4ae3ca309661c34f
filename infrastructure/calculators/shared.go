// Package calculators provides the revenue and bonus strategies that
// plug into the sales analyzer.
package calculators

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Strategy names under which the built-in calculators are registered.
const (
	// SimpleRevenueName is the discount-aware revenue strategy.
	SimpleRevenueName = "simple"

	// ProfitTiersName is the rank-tiered bonus strategy.
	ProfitTiersName = "profit_tiers"
)

// Common errors returned by calculators.
var (
	// ErrUnexpectedParameters is returned when parameters are supplied to a
	// calculator that takes none.
	ErrUnexpectedParameters = errors.New("calculator takes no parameters")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
