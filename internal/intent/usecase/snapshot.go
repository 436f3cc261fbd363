package usecase

import (
	"math"

	"intent-router/internal/model"
)

// snapshot is one immutable version of the reference index. Classification
// loads a snapshot once and never observes a later swap.
type snapshot struct {
	version   uint64
	encoderID string
	dims      int
	routes    []model.Route
	refs      map[string][]reference
	size      int
}

type reference struct {
	utterance string
	vector    []float32
	norm      float64
}

func newReference(utterance string, vec []float32) reference {
	var sum float64
	for _, f := range vec {
		sum += float64(f) * float64(f)
	}
	return reference{utterance: utterance, vector: vec, norm: math.Sqrt(sum)}
}

// embeddings lists the snapshot in registry order.
func (s *snapshot) embeddings() []model.ReferenceEmbedding {
	out := make([]model.ReferenceEmbedding, 0, s.size)
	for _, r := range s.routes {
		for _, ref := range s.refs[r.Name] {
			vec := make([]float32, len(ref.vector))
			copy(vec, ref.vector)
			out = append(out, model.ReferenceEmbedding{
				RouteName: r.Name,
				Utterance: ref.utterance,
				Vector:    vec,
			})
		}
	}
	return out
}
