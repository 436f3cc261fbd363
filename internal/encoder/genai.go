package encoder

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	DefaultGenAIModel = "gemini-embedding-001"

	genaiTaskType = "SEMANTIC_SIMILARITY"
)

// GenAI embeds through the Gemini API using the semantic similarity task type.
type GenAI struct {
	client *genai.Client
	model  string
	dims   int
}

var _ Encoder = (*GenAI)(nil)

// NewGenAI creates a Gemini API client. dims > 0 requests a reduced output
// dimensionality from the model.
func NewGenAI(ctx context.Context, apiKey, model string, dims int) (*GenAI, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultGenAIModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAI{client: client, model: model, dims: dims}, nil
}

func (g *GenAI) Identity() string {
	if g.dims > 0 {
		return fmt.Sprintf("genai:%s:%d", g.model, g.dims)
	}
	return "genai:" + g.model
}

func (g *GenAI) Dimensions() int {
	return g.dims
}

func (g *GenAI) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := validateInputs(texts); err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	cfg := &genai.EmbedContentConfig{TaskType: genaiTaskType}
	if g.dims > 0 {
		cfg.OutputDimensionality = genai.Ptr(int32(g.dims))
	}

	result, err := g.client.Models.EmbedContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, wrapBackend("genai", err)
	}

	vecs := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb != nil {
			vecs[i] = emb.Values
		}
	}
	if err := checkOutput(len(texts), vecs); err != nil {
		return nil, err
	}
	return vecs, nil
}
