// Package extract turns free-text questions into structured slot values by
// prompting a chat model and defensively parsing whatever comes back.
package extract

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cloudwego/eino/schema"

	"github.com/revozen-chatbot/server/internal/agent/llm"
	"github.com/revozen-chatbot/server/internal/agent/model"
	"github.com/revozen-chatbot/server/internal/agent/parsers"
	"github.com/revozen-chatbot/server/internal/agent/prompts"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// ErrNoExtraction tags a turn the extractor could not make sense of: the
// model call failed or its output was not a JSON object. Callers surface a
// generic "couldn't understand" message and leave the session context
// untouched. It never propagates as a crash.
var ErrNoExtraction = errors.New("extract: no usable result")

type Extractor struct {
	chatModel llm.ChatModel
}

func New(chatModel llm.ChatModel) *Extractor {
	return &Extractor{chatModel: chatModel}
}

// Extract resolves the slot values for one turn. Deterministic regex
// overrides are layered on top of the model's stated intent, and brand/size
// are back-filled from the prior session context when the turn omits them.
// Intent and date_range are deliberately not back-filled here; carrying
// those forward is the context merge step's job.
func (e *Extractor) Extract(ctx context.Context, question string, prior model.QueryContext) (model.ExtractedInfo, error) {
	out, err := e.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompts.RenderExtract(question)),
	})
	if err != nil {
		logx.Warn().Err(err).Msg("extract model call failed")
		return model.ExtractedInfo{}, ErrNoExtraction
	}
	if out == nil {
		return model.ExtractedInfo{}, ErrNoExtraction
	}

	payload := parsers.StripFence(out.Content)

	var info model.ExtractedInfo
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		logx.Warn().Err(err).Str("payload", snippet(payload)).Msg("extract payload is not valid JSON")
		return model.ExtractedInfo{}, ErrNoExtraction
	}
	info.Normalize()

	applyIntentOverrides(question, &info)

	// Back-fill brand and size only. The model misses follow-up references
	// ("what sizes do they have") that the session already resolved.
	if info.Brand == nil && prior.Brand != nil {
		info.Brand = prior.Brand
	}
	if info.Size == nil && prior.Size != nil {
		info.Size = prior.Size
	}

	return info, nil
}

const maxSnippetLen = 200

func snippet(s string) string {
	if len(s) <= maxSnippetLen {
		return s
	}
	return s[:maxSnippetLen]
}
