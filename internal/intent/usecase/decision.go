package usecase

import (
	"math"

	"intent-router/internal/model"
)

// decide picks the highest scoring route. Exact ties go to the route
// registered first. The winner must clear its own threshold, or the router
// threshold when it has none; otherwise the result is model.RouteNone. A
// losing winner never falls through to a lower-scoring route.
func decide(scores map[string]float64, routes []model.Route, threshold float64) (string, float64) {
	var (
		winner    *model.Route
		bestScore = math.Inf(-1)
	)
	for i := range routes {
		s, ok := scores[routes[i].Name]
		if !ok {
			continue
		}
		if winner == nil || s > bestScore {
			winner = &routes[i]
			bestScore = s
		}
	}

	if winner == nil || math.IsInf(bestScore, -1) {
		return model.RouteNone, bestScore
	}

	t := threshold
	if winner.Threshold != nil {
		t = *winner.Threshold
	}
	if bestScore < t {
		return model.RouteNone, bestScore
	}
	return winner.Name, bestScore
}
