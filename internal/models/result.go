// internal/models/result.go
package models

// Outcome classifies how a consultation query ended. The dialogue layer
// picks its reply template from this, so the empty cases stay distinct.
type Outcome string

const (
	OutcomeMatched      Outcome = "matched"
	OutcomeNoCandidates Outcome = "no_candidates"
	OutcomeNoBrandMatch Outcome = "no_brand_match"
	OutcomeNoPriceMatch Outcome = "no_price_match"
)

// Recommendation is one ranked product offered to the user. Price is the
// minimum current variant price and may be absent when the catalog has no
// price row for the group.
type Recommendation struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	Price   *int64 `json:"price,omitempty"`
}

// Result is the engine's answer to one query: a user-facing summary, the
// ordered recommendations, and the raw ordered group-ID list kept as a side
// channel so later turns ("add the second one") resolve against the same
// ordering.
type Result struct {
	Outcome         Outcome          `json:"outcome"`
	Message         string           `json:"message"`
	Recommendations []Recommendation `json:"recommendations"`
	GroupIDs        []string         `json:"groupIds"`
}
