package encoder

import (
	"context"

	"intent-router/pkg/voyage"
)

// Voyage adapts the Voyage AI embeddings API.
type Voyage struct {
	client voyage.IVoyage
	dims   int
}

var _ Encoder = (*Voyage)(nil)

// NewVoyage wraps client. dims may be 0 when the model's size is not configured.
func NewVoyage(client voyage.IVoyage, dims int) *Voyage {
	return &Voyage{client: client, dims: dims}
}

func (v *Voyage) Identity() string {
	return "voyage:" + v.client.Model()
}

func (v *Voyage) Dimensions() int {
	return v.dims
}

func (v *Voyage) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := validateInputs(texts); err != nil {
		return nil, err
	}

	vecs, err := v.client.Embed(ctx, texts)
	if err != nil {
		return nil, wrapBackend("voyage", err)
	}
	if err := checkOutput(len(texts), vecs); err != nil {
		return nil, err
	}
	return vecs, nil
}
