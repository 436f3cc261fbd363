package gemini

import "context"

// IGemini calls the generateContent endpoint for one model. The answer
// collaborators reach it through the llmprovider fallback chain.
type IGemini interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	// Model is the configured model id, after defaults are applied.
	Model() string
}

// New validates cfg and returns a client. A missing key fails with
// ErrMissingAPIKey so the provider factory can skip the entry.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
