package qdrant

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"` // Collection name (in URL)
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`     // Vector dimension
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// Point represents a vector with payload.
// Qdrant accepts only UUID strings or unsigned integers as ids.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// UpsertPointsRequest is the request to insert/update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// SearchRequest is the request for semantic search.
type SearchRequest struct {
	Vector         []float32              `json:"vector"`                    // Query vector
	Limit          int                    `json:"limit"`                     // Top-K results
	WithPayload    bool                   `json:"with_payload"`              // Include metadata
	Filter         map[string]interface{} `json:"filter,omitempty"`          // Optional filters
	ScoreThreshold *float64               `json:"score_threshold,omitempty"` // Drop hits below
}

// SearchResponse contains search results.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search result with similarity score.
type ScoredPoint struct {
	ID      string                 `json:"id"`
	Score   float64                `json:"score"`
	Payload map[string]interface{} `json:"payload"`
}

// DeletePointsRequest is the request to delete points.
type DeletePointsRequest struct {
	Points []string `json:"points"`
}

// Distance metrics.
const (
	DistanceCosine = "Cosine"
	DistanceDot    = "Dot"
)

// String returns a payload field as a string, or "".
func (p ScoredPoint) String(key string) string {
	if v, ok := p.Payload[key].(string); ok {
		return v
	}
	return ""
}
