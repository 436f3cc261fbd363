package http

import (
	"math"
	"time"

	"intent-router/internal/intent"
	"intent-router/internal/model"
	"intent-router/pkg/response"
)

// --- Request DTOs ---

type classifyReq struct {
	Query string `json:"query"`
}

type classifyBatchReq struct {
	Queries []string `json:"queries" binding:"required,min=1"`
}

type updateRoutesReq struct {
	Routes []routeDTO `json:"routes" binding:"required,min=1"`
}

type routeDTO struct {
	Name       string   `json:"name"`
	Utterances []string `json:"utterances"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

func (r updateRoutesReq) toRoutes() []model.Route {
	routes := make([]model.Route, len(r.Routes))
	for i, dto := range r.Routes {
		routes[i] = model.Route{Name: dto.Name, Utterances: dto.Utterances, Threshold: dto.Threshold}
	}
	return routes
}

// --- Response DTOs ---

// intentResp renders scores of -Inf (routes with no reference vectors) as null.
type intentResp struct {
	ChosenRoute     string              `json:"chosen_route"`
	Matched         bool                `json:"matched"`
	Score           *float64            `json:"score"`
	CandidateScores map[string]*float64 `json:"candidate_scores"`
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func newIntentResp(in model.Intent) intentResp {
	scores := make(map[string]*float64, len(in.CandidateScores))
	for name, s := range in.CandidateScores {
		scores[name] = finite(s)
	}
	return intentResp{
		ChosenRoute:     in.ChosenRoute,
		Matched:         in.Matched(),
		Score:           finite(in.Score),
		CandidateScores: scores,
	}
}

type classifyBatchResp struct {
	Intents []intentResp `json:"intents"`
}

func newClassifyBatchResp(in []model.Intent) classifyBatchResp {
	out := make([]intentResp, len(in))
	for i, it := range in {
		out[i] = newIntentResp(it)
	}
	return classifyBatchResp{Intents: out}
}

type syncResp struct {
	Added      int     `json:"added"`
	Removed    int     `json:"removed"`
	Kept       int     `json:"kept"`
	Version    uint64  `json:"version"`
	DurationMS float64 `json:"duration_ms"`
}

func newSyncResp(out intent.SyncOutput) syncResp {
	return syncResp{
		Added:      out.Added,
		Removed:    out.Removed,
		Kept:       out.Kept,
		Version:    out.Version,
		DurationMS: float64(out.Duration) / float64(time.Millisecond),
	}
}

type routesResp struct {
	Routes []routeDTO `json:"routes"`
}

func newRoutesResp(routes []model.Route) routesResp {
	out := make([]routeDTO, len(routes))
	for i, r := range routes {
		out[i] = routeDTO{Name: r.Name, Utterances: r.Utterances, Threshold: r.Threshold}
	}
	return routesResp{Routes: out}
}

type statsResp struct {
	Ready         bool              `json:"ready"`
	EncoderID     string            `json:"encoder_id"`
	Dimensions    int               `json:"dimensions"`
	Routes        int               `json:"routes"`
	Embeddings    int               `json:"embeddings"`
	Version       uint64            `json:"version"`
	Threshold     float64           `json:"threshold"`
	LastSync      response.DateTime `json:"last_sync"`
	LastSyncError string            `json:"last_sync_error,omitempty"`
}

func newStatsResp(s intent.Stats) statsResp {
	return statsResp{
		Ready:         s.Ready,
		EncoderID:     s.EncoderID,
		Dimensions:    s.Dimensions,
		Routes:        s.Routes,
		Embeddings:    s.Embeddings,
		Version:       s.Version,
		Threshold:     s.Threshold,
		LastSync:      response.DateTime(s.LastSync),
		LastSyncError: s.LastSyncError,
	}
}
