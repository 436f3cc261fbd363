package usecase

import (
	"intent-router/internal/encoder"
	"intent-router/internal/faq"
	"intent-router/internal/faq/repository"
	"intent-router/pkg/llmprovider"
	pkgLog "intent-router/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	enc  encoder.Encoder
	repo repository.Repository
	llm  llmprovider.Generator
	topK int
	min  float64
}

// New creates the FAQ answerer.
func New(l pkgLog.Logger, cfg faq.Config, enc encoder.Encoder, repo repository.Repository, llm llmprovider.Generator) *implUseCase {
	topK := cfg.TopK
	if topK <= 0 {
		topK = faq.DefaultTopK
	}
	return &implUseCase{
		l:    l,
		enc:  enc,
		repo: repo,
		llm:  llm,
		topK: topK,
		min:  cfg.MinScore,
	}
}
