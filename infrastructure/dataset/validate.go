package dataset

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-tally/internal/domain"
)

// Package-level validator instance for record validation. Field errors
// are reported with the JSON names of the source document.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every record of data against its struct tags: non-empty
// identifiers, non-negative prices, positive quantities and discounts
// within [0, 100]. All failures are collected into one
// *domain.ValidationError that matches domain.ErrInvalidInput.
//
// The analyzer does not call Validate; it only needs the collections to be
// present and the identifiers to be unique.
func Validate(data *domain.Dataset) error {
	if data == nil {
		verr := domain.NewValidationError(domain.ErrInvalidInput, "dataset")
		verr.AddError("dataset is required")
		return verr
	}

	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("dataset validation: %w", err)
	}

	verr := domain.NewValidationError(domain.ErrInvalidInput, "dataset")
	for _, fe := range fieldErrs {
		verr.AddError(describe(fe))
	}
	return verr
}

// describe renders a field error as
// "purchase_records[3].items[0].quantity must be gt 0, got 0".
func describe(fe validator.FieldError) string {
	path := strings.TrimPrefix(fe.Namespace(), "Dataset.")
	if fe.Tag() == "required" {
		return path + " is required"
	}
	return fmt.Sprintf("%s must be %s %s, got %v", path, fe.Tag(), fe.Param(), fe.Value())
}
