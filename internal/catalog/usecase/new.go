package usecase

import (
	"intent-router/internal/catalog/repository"
	"intent-router/pkg/llmprovider"
	pkgLog "intent-router/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.Repository
	llm  llmprovider.Generator
}

// New creates the catalog answerer.
func New(l pkgLog.Logger, repo repository.Repository, llm llmprovider.Generator) *implUseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
		llm:  llm,
	}
}
