package usecase

import (
	"context"
	"strings"
	"time"

	"intent-router/internal/chat"
	"intent-router/internal/model"
)

func (uc *implUseCase) Reply(ctx context.Context, sc model.Scope, query string) (chat.ReplyOutput, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return chat.ReplyOutput{}, chat.ErrEmptyQuery
	}

	intent, err := uc.router.Classify(ctx, query)
	if err != nil {
		uc.l.Errorf(ctx, "chat.usecase.Reply: user=%s classify failed: %v", sc.UserID, err)
		return uc.done(chat.ReplyOutput{Answer: chat.MessageError, Intent: intent, Outcome: chat.OutcomeError}), nil
	}

	if !intent.Matched() {
		uc.l.Infof(ctx, "chat.usecase.Reply: user=%s no route (score=%.3f)", sc.UserID, intent.Score)
		return uc.done(chat.ReplyOutput{Answer: chat.MessageNoRoute, Intent: intent, Outcome: chat.OutcomeUnhandled}), nil
	}

	h, ok := uc.handlers[intent.ChosenRoute]
	if !ok {
		uc.l.Warnf(ctx, "chat.usecase.Reply: route %s has no answerer", intent.ChosenRoute)
		return uc.done(chat.ReplyOutput{
			Answer:  chat.MessageNoHandler(intent.ChosenRoute),
			Intent:  intent,
			Outcome: chat.OutcomeUnhandled,
		}), nil
	}

	start := time.Now()
	text, err := h.Answer(ctx, query)
	uc.metrics.ObserveAnswer(intent.ChosenRoute, time.Since(start))
	if err != nil {
		uc.l.Errorf(ctx, "chat.usecase.Reply: user=%s route=%s answer failed: %v", sc.UserID, intent.ChosenRoute, err)
		return uc.done(chat.ReplyOutput{Answer: chat.MessageError, Intent: intent, Outcome: chat.OutcomeError}), nil
	}

	uc.l.Infof(ctx, "chat.usecase.Reply: user=%s channel=%s route=%s score=%.3f", sc.UserID, sc.Channel, intent.ChosenRoute, intent.Score)
	return uc.done(chat.ReplyOutput{Answer: text, Intent: intent, Outcome: chat.OutcomeAnswered}), nil
}

func (uc *implUseCase) done(out chat.ReplyOutput) chat.ReplyOutput {
	route := out.Intent.ChosenRoute
	if route == "" {
		route = model.RouteNone
	}
	uc.metrics.ObserveChat(route, out.Outcome)
	return out
}
