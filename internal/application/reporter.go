package application

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ahrav/go-tally/internal/domain"
)

// report ranks sellers by descending profit and shapes one entry per
// seller. The sort is stable, so sellers with equal profit keep dataset
// order. Bonuses are computed from unrounded stats; only the emitted
// monetary fields are rounded.
func (a *Analyzer) report(agg *aggregation, bonusOf domain.BonusFunc) []domain.ReportEntry {
	ranked := slices.Clone(agg.sellers)
	slices.SortStableFunc(ranked, func(x, y *domain.SellerStats) int {
		return cmp.Compare(y.Profit, x.Profit)
	})

	total := len(ranked)
	entries := make([]domain.ReportEntry, 0, total)
	for rank, stats := range ranked {
		bonus := bonusOf(rank, total, *stats)

		entries = append(entries, domain.ReportEntry{
			SellerID:    stats.SellerID,
			Name:        stats.Name,
			Revenue:     a.round(stats.Revenue),
			Profit:      a.round(stats.Profit),
			SalesCount:  stats.SalesCount,
			TopProducts: topProducts(stats.ProductsSold, a.config.TopProducts),
			Bonus:       a.round(bonus),
		})
	}
	return entries
}

// topProducts orders a seller's tallies by descending quantity, keeping
// first-seen order among equal quantities, and returns at most limit of
// them. The result is never nil.
func topProducts(sold domain.SoldQuantities, limit int) []domain.TopProduct {
	entries := sold.Entries()
	slices.SortStableFunc(entries, func(x, y domain.TopProduct) int {
		return cmp.Compare(y.Quantity, x.Quantity)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (a *Analyzer) productSummary(agg *aggregation) []domain.ProductStats {
	summary := make([]domain.ProductStats, 0, len(agg.products))
	for _, p := range agg.products {
		summary = append(summary, domain.ProductStats{
			SKU:      p.SKU,
			Quantity: p.Quantity,
			Revenue:  a.round(p.Revenue),
			Profit:   a.round(p.Profit),
		})
	}
	return summary
}

func (a *Analyzer) round(v float64) float64 {
	return RoundMoney(v, a.config.DecimalPlaces)
}

// RoundMoney rounds v to places decimal places, half away from zero, using
// the shortest decimal representation of v. So 2.675 rounds to 2.68 even
// though its binary value is slightly below 2.675. NaN and infinities are
// returned unchanged.
func RoundMoney(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
