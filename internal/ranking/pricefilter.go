// internal/ranking/pricefilter.go
package ranking

import (
	"sort"

	"consult-ranking/internal/models"
)

// filterByPrice keeps candidates whose minimum variant price satisfies the
// set bounds. A candidate with no price record cannot be verified against a
// budget, so it is excluded whenever any bound is active.
func filterByPrice(fused []models.FusedCandidate, prices map[string]int64, minBudget, maxBudget *int64) []models.FusedCandidate {
	if minBudget == nil && maxBudget == nil {
		return fused
	}

	kept := make([]models.FusedCandidate, 0, len(fused))
	for _, c := range fused {
		price, ok := prices[c.GroupID]
		if !ok {
			continue
		}
		if minBudget != nil && price < *minBudget {
			continue
		}
		if maxBudget != nil && price > *maxBudget {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// sortByPriceDesc orders candidates most expensive first, group ID
// ascending on equal price. This premium-first default for price-only
// queries is deliberate product behavior and is preserved exactly.
func sortByPriceDesc(fused []models.FusedCandidate, prices map[string]int64) {
	sort.SliceStable(fused, func(i, j int) bool {
		pi, pj := prices[fused[i].GroupID], prices[fused[j].GroupID]
		if pi != pj {
			return pi > pj
		}
		return fused[i].GroupID < fused[j].GroupID
	})
}
