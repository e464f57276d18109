// internal/ranking/normalize.go
package ranking

// normalizeScores min-max scales one source's raw scores into [0,1] so
// heterogeneous sources become comparable.
//
// When every raw score is identical (including the single-hit case) all
// outputs are 1.0: a lone perfect match must not be zeroed by the rescale.
// Candidates absent from the input simply have no entry; map lookups
// default them to 0, which is the degradation contract for missing or
// failed sources.
func normalizeScores(raw map[string]float64) map[string]float64 {
	if len(raw) == 0 {
		return map[string]float64{}
	}

	first := true
	var min, max float64
	for _, s := range raw {
		if first {
			min, max = s, s
			first = false
			continue
		}
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	norm := make(map[string]float64, len(raw))
	if max == min {
		for id := range raw {
			norm[id] = 1.0
		}
		return norm
	}

	span := max - min
	for id, s := range raw {
		norm[id] = (s - min) / span
	}
	return norm
}
