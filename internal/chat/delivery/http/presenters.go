package http

import (
	"math"

	"intent-router/internal/chat"
)

type chatReq struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

type chatResp struct {
	Answer      string   `json:"answer"`
	ChosenRoute string   `json:"chosen_route"`
	Score       *float64 `json:"score"`
	Outcome     string   `json:"outcome"`
}

func newChatResp(out chat.ReplyOutput) chatResp {
	resp := chatResp{
		Answer:      out.Answer,
		ChosenRoute: out.Intent.ChosenRoute,
		Outcome:     out.Outcome,
	}
	if s := out.Intent.Score; !math.IsInf(s, 0) && !math.IsNaN(s) {
		resp.Score = &s
	}
	return resp
}

type routesResp struct {
	Routes []string `json:"routes"`
}
