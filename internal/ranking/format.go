// internal/ranking/format.go
package ranking

import (
	"fmt"

	"consult-ranking/internal/models"
)

// User-facing reply texts for the non-error outcomes. The three empty
// cases stay distinct so the dialogue layer can respond differently to
// "we don't carry that brand", "nothing in that price range" and a plain
// miss.
const (
	msgNoCandidates = "Sorry, I couldn't find any products matching those requirements."
	msgNoBrandMatch = "Sorry, we don't carry any products from that brand in this category."
	msgNoPriceMatch = "Sorry, nothing matches in that price range. Would you like to adjust the budget?"
)

func emptyResult(outcome models.Outcome) *models.Result {
	msg := msgNoCandidates
	switch outcome {
	case models.OutcomeNoBrandMatch:
		msg = msgNoBrandMatch
	case models.OutcomeNoPriceMatch:
		msg = msgNoPriceMatch
	}
	return &models.Result{
		Outcome:         outcome,
		Message:         msg,
		Recommendations: []models.Recommendation{},
		GroupIDs:        []string{},
	}
}

// topK truncates the fused ordering to the requested size. Non-positive or
// missing values coerce to the engine default instead of erroring.
func (e *Engine) topK(fused []models.FusedCandidate, requested int) []models.FusedCandidate {
	k := requested
	if k <= 0 {
		k = e.opts.TopK
	}
	if len(fused) > k {
		fused = fused[:k]
	}
	return fused
}

// formatResult resolves the surviving candidates to catalog records and
// builds the final response: summary line, ordered recommendations, and
// the raw ordered ID list the dialogue layer uses for later references.
func (st *queryState) formatResult(fused []models.FusedCandidate, groups map[string]models.ProductGroup, prices map[string]int64) *models.Result {
	recs := make([]models.Recommendation, 0, len(fused))
	ids := make([]string, 0, len(fused))

	for _, c := range fused {
		group, ok := groups[c.GroupID]
		if !ok {
			// Every fused ID must resolve to exactly one catalog group;
			// anything else is index drift and is skipped rather than
			// shown with a fabricated name.
			continue
		}
		rec := models.Recommendation{
			GroupID: group.GroupID,
			Name:    group.Name,
		}
		if price, ok := prices[c.GroupID]; ok {
			p := price
			rec.Price = &p
		}
		recs = append(recs, rec)
		ids = append(ids, group.GroupID)
	}

	if len(recs) == 0 {
		return emptyResult(models.OutcomeNoCandidates)
	}

	return &models.Result{
		Outcome:         models.OutcomeMatched,
		Message:         fmt.Sprintf("Here are %d products matching your request:", len(recs)),
		Recommendations: recs,
		GroupIDs:        ids,
	}
}
