// Package agent orchestrates the slot-filling pipeline: extract slot values
// from the question, merge them with the session context, and dispatch the
// resolved intent to a query handler.
package agent

import (
	"context"
	"errors"

	"github.com/revozen-chatbot/server/internal/agent/extract"
	"github.com/revozen-chatbot/server/internal/agent/intents"
	"github.com/revozen-chatbot/server/internal/agent/model"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// NotUnderstoodMessage answers turns whose extraction produced no usable
// result. The session context stays untouched for such turns.
const NotUnderstoodMessage = "Sorry, I couldn't understand your request."

// AskService runs one slot-filling turn per call. Each turn is handled
// independently; state lives only in the session store.
type AskService struct {
	extractor *extract.Extractor
	sessions  model.SessionStore
	answerer  *intents.Answerer
}

func NewAskService(extractor *extract.Extractor, sessions model.SessionStore, answerer *intents.Answerer) *AskService {
	return &AskService{
		extractor: extractor,
		sessions:  sessions,
		answerer:  answerer,
	}
}

// Ask answers one question. An empty sessionID means an anonymous turn:
// prior context is empty and nothing is persisted afterwards.
func (s *AskService) Ask(ctx context.Context, question, sessionID string) (string, error) {
	prior := s.loadContext(ctx, sessionID)

	info, err := s.extractor.Extract(ctx, question, prior)
	if err != nil {
		if errors.Is(err, extract.ErrNoExtraction) {
			return NotUnderstoodMessage, nil
		}
		return "", err
	}

	merged := model.MergeContext(prior, info)

	if sessionID != "" {
		if err := s.sessions.Put(ctx, sessionID, merged); err != nil {
			// The answer is still worth giving; the session just loses
			// this turn's slot updates.
			logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to persist session context")
		}
	}

	return s.answerer.Answer(ctx, merged)
}

func (s *AskService) loadContext(ctx context.Context, sessionID string) model.QueryContext {
	if sessionID == "" {
		return model.QueryContext{}
	}
	prior, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load session context, starting empty")
		return model.QueryContext{}
	}
	if !ok {
		return model.QueryContext{}
	}
	return prior
}
