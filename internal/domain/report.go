package domain

// TopProduct is a SKU and the number of units a seller sold of it.
type TopProduct struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// ReportEntry is one seller's line in the final report. Monetary fields are
// rounded; entries are ordered by descending profit.
type ReportEntry struct {
	SellerID    string       `json:"seller_id"`
	Name        string       `json:"name"`
	Revenue     float64      `json:"revenue"`
	Profit      float64      `json:"profit"`
	SalesCount  int          `json:"sales_count"`
	TopProducts []TopProduct `json:"top_products"`
	Bonus       float64      `json:"bonus"`
}

// ReferenceKind names the collection a dangling reference points into.
type ReferenceKind string

const (
	// ReferenceSeller marks a purchase record whose seller_id is unknown.
	ReferenceSeller ReferenceKind = "seller"

	// ReferenceProduct marks a purchase item whose sku is unknown.
	ReferenceProduct ReferenceKind = "product"
)

// SkippedReference describes a record or item left out of an analysis
// because it referenced an unknown seller or product.
type SkippedReference struct {
	Kind ReferenceKind `json:"kind"`
	ID   string        `json:"id"`

	// RecordIndex is the position of the purchase record in the dataset.
	RecordIndex int `json:"record_index"`

	// ItemIndex is the position of the item within the record, or -1 when
	// the whole record was skipped.
	ItemIndex int `json:"item_index"`

	// Suggestion is the closest known identifier, if one is near enough.
	Suggestion string `json:"suggestion,omitempty"`
}
