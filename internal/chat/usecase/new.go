package usecase

import (
	"sort"

	"intent-router/internal/answer"
	"intent-router/internal/chat"
	pkgLog "intent-router/pkg/log"
	"intent-router/pkg/metrics"
)

type implUseCase struct {
	l        pkgLog.Logger
	router   chat.Classifier
	handlers map[string]answer.Answerer
	metrics  *metrics.Metrics
}

// New creates the chat usecase. handlers maps route names to answerers;
// nil entries are ignored.
func New(l pkgLog.Logger, router chat.Classifier, handlers map[string]answer.Answerer, m *metrics.Metrics) *implUseCase {
	hs := make(map[string]answer.Answerer, len(handlers))
	for name, h := range handlers {
		if h != nil {
			hs[name] = h
		}
	}
	return &implUseCase{
		l:        l,
		router:   router,
		handlers: hs,
		metrics:  m,
	}
}

func (uc *implUseCase) Routes() []string {
	names := make([]string, 0, len(uc.handlers))
	for name := range uc.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
