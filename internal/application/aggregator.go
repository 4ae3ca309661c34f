package application

import (
	"github.com/ahrav/go-tally/internal/domain"
)

// aggregation holds the accumulators built by a single replay of the
// purchase records. It is owned by one Analyze call.
type aggregation struct {
	// sellers and products keep dataset order.
	sellers  []*domain.SellerStats
	products []*domain.ProductStats
	skipped  []domain.SkippedReference
	records  int
	items    int
}

// aggregate replays every purchase record in order. Unknown sellers skip
// the whole record and unknown products skip the item, unless the strict
// reference policy is configured, in which case the first one fails the
// analysis.
func (a *Analyzer) aggregate(data *domain.Dataset, revenueOf domain.RevenueFunc) (*aggregation, error) {
	agg := &aggregation{
		sellers:  make([]*domain.SellerStats, 0, len(data.Sellers)),
		products: make([]*domain.ProductStats, 0, len(data.Products)),
	}

	sellerIndex := make(map[string]*domain.SellerStats, len(data.Sellers))
	for _, s := range data.Sellers {
		stats := &domain.SellerStats{SellerID: s.ID, Name: s.DisplayName()}
		sellerIndex[s.ID] = stats
		agg.sellers = append(agg.sellers, stats)
	}

	type catalogEntry struct {
		product domain.Product
		stats   *domain.ProductStats
	}
	catalog := make(map[string]catalogEntry, len(data.Products))
	for _, p := range data.Products {
		stats := &domain.ProductStats{SKU: p.SKU}
		catalog[p.SKU] = catalogEntry{product: p, stats: stats}
		agg.products = append(agg.products, stats)
	}

	refs := newReferenceResolver(data)

	for ri, record := range data.PurchaseRecords {
		seller, ok := sellerIndex[record.SellerID]
		if !ok {
			if err := a.unresolved(agg, refs.seller(record.SellerID, ri)); err != nil {
				return nil, err
			}
			continue
		}

		seller.SalesCount++
		agg.records++

		for ii, item := range record.Items {
			entry, ok := catalog[item.SKU]
			if !ok {
				if err := a.unresolved(agg, refs.product(item.SKU, ri, ii)); err != nil {
					return nil, err
				}
				continue
			}

			revenue := revenueOf(item, entry.product)
			cost := float64(entry.product.PurchasePrice * float64(item.Quantity))
			profit := revenue - cost

			seller.Revenue += revenue
			seller.Profit += profit
			seller.ProductsSold.Add(item.SKU, item.Quantity)

			entry.stats.Quantity += item.Quantity
			entry.stats.Revenue += revenue
			entry.stats.Profit += profit

			agg.items++
		}
	}

	return agg, nil
}

// unresolved applies the reference policy to a dangling reference.
func (a *Analyzer) unresolved(agg *aggregation, ref domain.SkippedReference) error {
	if a.config.ReferencePolicy == ReferenceStrict {
		return domain.NewReferenceError(ref)
	}
	agg.skipped = append(agg.skipped, ref)
	return nil
}
