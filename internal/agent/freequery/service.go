// Package freequery converts free-text admin questions into MongoDB queries
// via a language model, routes them to the right collection, executes them,
// and renders the raw result back into a friendly answer.
package freequery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/schema"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/revozen-chatbot/server/internal/agent/llm"
	"github.com/revozen-chatbot/server/internal/agent/model"
	"github.com/revozen-chatbot/server/internal/agent/parsers"
	"github.com/revozen-chatbot/server/internal/agent/prompts"
	errx "github.com/revozen-chatbot/server/internal/core/error"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// memoryConversationID keys the shared admin chat transcript. The free-query
// endpoint has no per-user sessions; all turns land in one conversation.
const memoryConversationID = "admin-chat"

// Result is the full outcome of one free-query turn.
type Result struct {
	MongoQuery       any      `json:"mongo_query"`
	RawResult        []bson.M `json:"raw_result"`
	FriendlyResponse string   `json:"friendly_response"`
}

// Service wires the free-query pipeline: synthesize, parse, detect, execute,
// format. Memory is optional; when nil no transcript is kept.
type Service struct {
	queryModel    llm.ChatModel
	responseModel llm.ChatModel
	runner        QueryRunner
	memory        model.ConversationRepository
}

func NewService(queryModel, responseModel llm.ChatModel, runner QueryRunner, memory model.ConversationRepository) *Service {
	return &Service{
		queryModel:    queryModel,
		responseModel: responseModel,
		runner:        runner,
		memory:        memory,
	}
}

// Chat handles one turn. Synthesis and execution failures fail the turn with
// an explicit error; only the final formatting step degrades instead of
// failing, since by then there is a result worth returning.
func (s *Service) Chat(ctx context.Context, message string) (*Result, error) {
	s.remember(ctx, schema.UserMessage(message))

	query, err := s.synthesize(ctx, message)
	if err != nil {
		return nil, err
	}

	target := DetectCollection(query)
	if target == TargetAmbiguous {
		logx.Warn().Interface("query", query).Msg("synthesized query names no known collection")
		return nil, errx.New(nil, http.StatusUnprocessableEntity, "could not determine target collection for query")
	}
	logx.Debug().Str("collection", target.Collection()).Msg("routing synthesized query")

	raw, err := s.runner.Run(ctx, target, query)
	if err != nil {
		return nil, errx.New(err, errx.StatusOf(err), "query execution failed")
	}

	friendly := s.format(ctx, message, raw)
	s.remember(ctx, schema.AssistantMessage(friendly, nil))

	return &Result{
		MongoQuery:       query,
		RawResult:        raw,
		FriendlyResponse: friendly,
	}, nil
}

// synthesize asks the query model for a Mongo query and defensively parses
// the reply. There is no safe default query, so failure here fails the turn.
func (s *Service) synthesize(ctx context.Context, message string) (any, error) {
	out, err := s.queryModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompts.RenderQuery(message)),
	})
	if err != nil {
		logx.Error().Err(err).Msg("query synthesis model call failed")
		return nil, errx.New(err, http.StatusBadGateway, "failed to generate MongoDB query")
	}
	if out == nil {
		return nil, errx.New(nil, http.StatusBadGateway, "failed to generate MongoDB query")
	}

	query, err := parsers.ParseQuery(out.Content)
	if err != nil {
		logx.Warn().Err(err).Msg("query model returned unparsable output")
		return nil, errx.New(err, http.StatusUnprocessableEntity, "failed to generate MongoDB query")
	}
	return query, nil
}

// format renders the raw result into a friendly answer. Best effort: its own
// failure is substituted with a degraded inline message, never discarded.
func (s *Service) format(ctx context.Context, question string, raw []bson.M) string {
	data, err := json.Marshal(raw)
	if err != nil {
		data = []byte("[]")
	}

	out, err := s.responseModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompts.RenderResponse(question, string(data))),
	})
	if err != nil || out == nil {
		logx.Warn().Err(err).Msg("friendly response formatting failed")
		return fmt.Sprintf("Failed to generate friendly response: %v", err)
	}
	return strings.TrimSpace(out.Content)
}

// remember appends a transcript message, best effort.
func (s *Service) remember(ctx context.Context, msg *schema.Message) {
	if s.memory == nil {
		return
	}
	if err := s.memory.AddMessage(ctx, memoryConversationID, msg); err != nil {
		logx.Warn().Err(err).Msg("failed to record chat transcript message")
	}
}
