package domain

// RevenueFunc computes the revenue of a single purchase item.
// Implementations must be pure: the same inputs always yield the same
// result and no state is modified.
//
// Example:
//
//	revenue := calculate(PurchaseItem{SKU: "SKU_001", SalePrice: 100, Quantity: 2}, product)
type RevenueFunc func(item PurchaseItem, product Product) float64

// BonusFunc computes a seller's bonus from its position in the profit
// ranking. rank is zero-based, total is the number of ranked sellers and
// seller carries the unrounded accumulated figures.
// Implementations must be pure.
type BonusFunc func(rank, total int, seller SellerStats) float64
