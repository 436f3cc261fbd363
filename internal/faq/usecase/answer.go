package usecase

import (
	"context"
	"fmt"
	"strings"

	"intent-router/internal/encoder"
	"intent-router/internal/faq"
	"intent-router/internal/faq/repository"
	"intent-router/pkg/llmprovider"
)

func (uc *implUseCase) Answer(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", faq.ErrEmptyQuery
	}

	vec, err := encoder.EncodeOne(ctx, uc.enc, query)
	if err != nil {
		return "", fmt.Errorf("faq.usecase.Answer: encode: %w", err)
	}

	hits, err := uc.repo.Search(ctx, vec, repository.SearchOptions{Limit: uc.topK, MinScore: uc.min})
	if err != nil {
		return "", fmt.Errorf("faq.usecase.Answer: %w", err)
	}
	if len(hits) == 0 {
		uc.l.Infof(ctx, "faq.usecase.Answer: no FAQ entry for %q", query)
		return faq.NoAnswer, nil
	}

	req := llmprovider.NewTextRequest(systemPrompt, buildPrompt(query, hits))
	req.Temperature = 0.2
	req.MaxTokens = 512

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("faq.usecase.Answer: llm: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", faq.ErrLLMResponse
	}

	uc.l.Debugf(ctx, "faq.usecase.Answer: hits=%d top=%.3f provider=%s", len(hits), hits[0].Score, resp.ProviderName)
	return text, nil
}
