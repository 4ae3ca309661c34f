// Package domain contains pure, dependency-free domain models and types
// for the sales analytics engine.
package domain

import "strings"

// Product is a catalog entry that purchase items reference by SKU.
type Product struct {
	// SKU uniquely identifies this product within a dataset.
	SKU string `json:"sku" validate:"required"`

	// PurchasePrice is the unit cost paid by the business for the product.
	// Profit on a sale is measured against it.
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`

	// Name is the human-readable product name.
	Name string `json:"name,omitempty"`

	// Category groups products for browsing; it does not affect calculations.
	Category string `json:"category,omitempty"`

	// SalePrice is the catalog list price. Purchase items carry their own
	// sale price, so this value is informational only.
	SalePrice float64 `json:"sale_price,omitempty"`
}

// Seller is a member of the sales staff that purchase records are
// attributed to.
type Seller struct {
	// ID uniquely identifies this seller within a dataset.
	ID string `json:"id" validate:"required"`

	// Name is the display name. When empty, DisplayName falls back to the
	// first and last name.
	Name string `json:"name,omitempty"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	Position  string `json:"position,omitempty"`
}

// DisplayName returns the name used in reports.
func (s Seller) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// PurchaseItem is a single line of a purchase record.
type PurchaseItem struct {
	// SKU references the Product being sold.
	SKU string `json:"sku" validate:"required"`

	// SalePrice is the unit price charged for this line before discount.
	SalePrice float64 `json:"sale_price" validate:"gte=0"`

	// Quantity is the number of units sold.
	Quantity int `json:"quantity" validate:"gt=0"`

	// Discount is a percentage in the range [0, 100], not a fraction.
	Discount float64 `json:"discount" validate:"gte=0,lte=100"`
}

// PurchaseRecord is a receipt attributed to a seller.
type PurchaseRecord struct {
	// SellerID references the Seller who made the sale.
	SellerID string `json:"seller_id" validate:"required"`

	// Items are the receipt lines in the order they were recorded.
	Items []PurchaseItem `json:"items" validate:"dive"`

	// The remaining fields describe the receipt and are not used by the
	// calculations.
	ReceiptID     string  `json:"receipt_id,omitempty"`
	Date          string  `json:"date,omitempty"`
	CustomerID    string  `json:"customer_id,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	TotalDiscount float64 `json:"total_discount,omitempty"`
}

// Dataset bundles the three collections an analysis runs over.
// A nil slice means the collection was absent from the source document.
type Dataset struct {
	Sellers         []Seller         `json:"sellers" validate:"dive"`
	Products        []Product        `json:"products" validate:"dive"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" validate:"dive"`
}
