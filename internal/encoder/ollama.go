package encoder

import (
	"context"

	"intent-router/pkg/ollama"
)

// Ollama adapts a local Ollama server.
type Ollama struct {
	client *ollama.Client
	dims   int
}

var _ Encoder = (*Ollama)(nil)

func NewOllama(client *ollama.Client, dims int) *Ollama {
	return &Ollama{client: client, dims: dims}
}

func (o *Ollama) Identity() string {
	return "ollama:" + o.client.Model()
}

func (o *Ollama) Dimensions() int {
	return o.dims
}

func (o *Ollama) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := validateInputs(texts); err != nil {
		return nil, err
	}

	vecs, err := o.client.Embed(ctx, texts)
	if err != nil {
		return nil, wrapBackend("ollama", err)
	}
	if err := checkOutput(len(texts), vecs); err != nil {
		return nil, err
	}
	return vecs, nil
}
