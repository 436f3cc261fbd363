package usecase

import (
	"fmt"
	"math"

	"intent-router/internal/intent"
)

// score returns, per route, the highest cosine similarity between query and
// any of the route's reference vectors. Routes without vectors score -Inf.
func score(query []float32, snap *snapshot) (map[string]float64, error) {
	if snap.dims > 0 && len(query) != snap.dims {
		return nil, fmt.Errorf("%w: query has %d, index has %d", intent.ErrDimensionMismatch, len(query), snap.dims)
	}

	qn := newReference("", query).norm
	scores := make(map[string]float64, len(snap.routes))
	for _, r := range snap.routes {
		best := math.Inf(-1)
		for _, ref := range snap.refs[r.Name] {
			if s := cosine(query, qn, ref); s > best {
				best = s
			}
		}
		scores[r.Name] = best
	}
	return scores, nil
}

func cosine(query []float32, queryNorm float64, ref reference) float64 {
	if queryNorm == 0 || ref.norm == 0 {
		return 0
	}
	var dot float64
	for i, f := range query {
		dot += float64(f) * float64(ref.vector[i])
	}
	return dot / (queryNorm * ref.norm)
}
