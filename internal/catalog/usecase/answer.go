package usecase

import (
	"context"
	"fmt"
	"strings"

	"intent-router/internal/catalog"
	"intent-router/pkg/llmprovider"
)

func (uc *implUseCase) Answer(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", catalog.ErrEmptyQuery
	}

	stmt, err := uc.generateSQL(ctx, query)
	if err != nil {
		return "", err
	}
	uc.l.Debugf(ctx, "catalog.usecase.Answer: sql=%q", stmt)

	rows, err := uc.repo.Query(ctx, stmt, catalog.MaxRows)
	if err != nil {
		return "", fmt.Errorf("catalog.usecase.Answer: %w", err)
	}
	if rows.Len() == 0 {
		return catalog.NoResults, nil
	}

	req := llmprovider.NewTextRequest(answerSystemPrompt, answerPrompt(query, rows))
	req.Temperature = 0.2
	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("catalog.usecase.Answer: llm: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", catalog.ErrLLMResponse
	}
	return text, nil
}

func (uc *implUseCase) generateSQL(ctx context.Context, query string) (string, error) {
	req := llmprovider.NewTextRequest(sqlPrompt(uc.repo.Schema()), query)
	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("catalog.usecase.Answer: llm: %w", err)
	}

	stmt, err := extractSQL(resp.Text())
	if err != nil {
		uc.l.Warnf(ctx, "catalog.usecase.Answer: rejected LLM output for %q: %v", query, err)
		return "", err
	}
	return stmt, nil
}
