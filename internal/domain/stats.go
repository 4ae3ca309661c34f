package domain

// SoldQuantities tallies units sold per SKU and remembers the order in
// which each SKU was first seen. The zero value is ready to use.
type SoldQuantities struct {
	order []string
	qty   map[string]int
}

// Add increases the tally for sku by n.
func (s *SoldQuantities) Add(sku string, n int) {
	if s.qty == nil {
		s.qty = make(map[string]int)
	}
	if _, seen := s.qty[sku]; !seen {
		s.order = append(s.order, sku)
	}
	s.qty[sku] += n
}

// Get returns the tally for sku, or 0 if it was never added.
func (s SoldQuantities) Get(sku string) int { return s.qty[sku] }

// Len returns the number of distinct SKUs.
func (s SoldQuantities) Len() int { return len(s.order) }

// Entries returns the tallies in first-seen order.
func (s SoldQuantities) Entries() []TopProduct {
	entries := make([]TopProduct, 0, len(s.order))
	for _, sku := range s.order {
		entries = append(entries, TopProduct{SKU: sku, Quantity: s.qty[sku]})
	}
	return entries
}

// SellerStats accumulates one seller's figures while purchase records are
// replayed. Instances are created before replay starts, so sellers without
// purchases still carry zeroed stats.
type SellerStats struct {
	SellerID string
	Name     string

	// Revenue and Profit are unrounded running totals.
	Revenue float64
	Profit  float64

	// SalesCount counts purchase records, not items.
	SalesCount int

	ProductsSold SoldQuantities
}

// ProductStats accumulates per-SKU figures across all sellers.
type ProductStats struct {
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}
