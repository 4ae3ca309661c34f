package application

import (
	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/ahrav/go-tally/internal/domain"
)

// maxSuggestionDistance is the largest edit distance at which a known
// identifier is offered as a suggestion for an unknown one.
const maxSuggestionDistance = 2

// referenceResolver builds diagnostics for dangling references, including
// the closest known identifier. It is created per analysis because
// cases.Caser is not safe for concurrent use.
type referenceResolver struct {
	sellerIDs []string
	skus      []string
	fold      cases.Caser
}

func newReferenceResolver(data *domain.Dataset) *referenceResolver {
	r := &referenceResolver{
		sellerIDs: make([]string, 0, len(data.Sellers)),
		skus:      make([]string, 0, len(data.Products)),
		fold:      cases.Fold(),
	}
	for _, s := range data.Sellers {
		r.sellerIDs = append(r.sellerIDs, s.ID)
	}
	for _, p := range data.Products {
		r.skus = append(r.skus, p.SKU)
	}
	return r
}

func (r *referenceResolver) seller(id string, record int) domain.SkippedReference {
	return domain.SkippedReference{
		Kind:        domain.ReferenceSeller,
		ID:          id,
		RecordIndex: record,
		ItemIndex:   -1,
		Suggestion:  r.suggest(id, r.sellerIDs),
	}
}

func (r *referenceResolver) product(sku string, record, item int) domain.SkippedReference {
	return domain.SkippedReference{
		Kind:        domain.ReferenceProduct,
		ID:          sku,
		RecordIndex: record,
		ItemIndex:   item,
		Suggestion:  r.suggest(sku, r.skus),
	}
}

// suggest returns the known identifier closest to id by case-folded
// Levenshtein distance, or "" when none is within maxSuggestionDistance.
// Ties go to the identifier that appears first in the dataset.
func (r *referenceResolver) suggest(id string, known []string) string {
	if id == "" {
		return ""
	}
	target := r.fold.String(id)

	best, bestDist := "", maxSuggestionDistance+1
	for _, candidate := range known {
		d := levenshtein.ComputeDistance(target, r.fold.String(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
