// internal/models/product.go
package models

// ProductGroup is one catalog product family (a model across its variants
// and stores). Identified by GroupID everywhere; name matching is never
// used for reconciliation.
type ProductGroup struct {
	GroupID string `json:"groupId"`
	Name    string `json:"groupName"`
	Brand   string `json:"brand"`
	Type    string `json:"type"`
}

// ScoreSource identifies which index produced a relevance score.
type ScoreSource string

const (
	SourceText   ScoreSource = "text"
	SourceVector ScoreSource = "vector"
)

// RelevanceScore is one raw hit from a relevance source. Raw scores are on
// the source's native scale and are not comparable across sources until
// normalized.
type RelevanceScore struct {
	GroupID string
	Raw     float64
	Source  ScoreSource
}

// SignalBreakdown records what each signal contributed to a candidate's
// final position, for explainability and debug logging.
type SignalBreakdown struct {
	StructuredRankSum int     `json:"structuredRankSum,omitempty"`
	TextScore         float64 `json:"textScore"`
	VectorScore       float64 `json:"vectorScore"`
}

// FusedCandidate is one candidate after fusion, before price filtering.
type FusedCandidate struct {
	GroupID   string          `json:"groupId"`
	Combined  float64         `json:"combined"`
	Breakdown SignalBreakdown `json:"breakdown"`
}
