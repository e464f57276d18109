// internal/ranking/options.go
package ranking

import (
	"time"

	"consult-ranking/internal/common/config"
)

const (
	// DefaultTopK is the number of recommendations returned when the query
	// does not ask for a specific count.
	DefaultTopK = 5

	// Default fusion weights: exact model-name and number matches in this
	// domain are usually more decisive than semantic paraphrase, so keyword
	// precision outweighs semantic recall.
	DefaultTextWeight   = 0.6
	DefaultVectorWeight = 0.4
)

// Options holds the engine knobs.
type Options struct {
	TopK          int
	TextWeight    float64
	VectorWeight  float64
	RelevanceSize int
	SourceTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		TopK:          DefaultTopK,
		TextWeight:    DefaultTextWeight,
		VectorWeight:  DefaultVectorWeight,
		RelevanceSize: 50,
		SourceTimeout: 3 * time.Second,
	}
}

// OptionsFromConfig maps the ranking config section onto Options, falling
// back to defaults for unset values.
func OptionsFromConfig(cfg config.RankingConfig) Options {
	opts := DefaultOptions()
	if cfg.TopK > 0 {
		opts.TopK = cfg.TopK
	}
	if cfg.TextWeight > 0 || cfg.VectorWeight > 0 {
		opts.TextWeight = cfg.TextWeight
		opts.VectorWeight = cfg.VectorWeight
	}
	if cfg.RelevanceSize > 0 {
		opts.RelevanceSize = cfg.RelevanceSize
	}
	if cfg.SourceTimeoutMS > 0 {
		opts.SourceTimeout = time.Duration(cfg.SourceTimeoutMS) * time.Millisecond
	}
	return opts
}
