package model

// Route is a named intent with its ordered example utterances.
type Route struct {
	Name       string   `json:"name" yaml:"name"`
	Utterances []string `json:"utterances" yaml:"utterances"`

	// Threshold overrides the router-wide threshold for this route when set.
	Threshold *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// ReferenceEmbedding is the encoded form of one registered utterance.
type ReferenceEmbedding struct {
	RouteName string    `json:"route_name"`
	Utterance string    `json:"utterance"`
	Vector    []float32 `json:"vector"`
}

// RouteNone is the chosen route when no route clears its threshold.
const RouteNone = "none"

// Intent is the result of classifying one query.
type Intent struct {
	ChosenRoute     string             `json:"chosen_route"`
	Score           float64            `json:"score"`
	CandidateScores map[string]float64 `json:"candidate_scores"`
}

// Matched reports whether a concrete route was chosen.
func (i Intent) Matched() bool {
	return i.ChosenRoute != "" && i.ChosenRoute != RouteNone
}
