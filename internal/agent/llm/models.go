package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/revozen-chatbot/server/internal/agent/model"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// ChatModel is the capability the pipelines depend on: one prompt in, one
// message out. Satisfied by *gemini.ChatModel in production and by fakes in
// tests. The caller treats the response as untrusted text.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// Config holds the configuration for chat model creation.
type Config struct {
	APIKey   string
	BaseURL  string
	Extract  *model.ExtractModelConfig
	Query    *model.QueryModelConfig
	Response *model.ResponseModelConfig
}

// ChatModels holds the three models the service runs: slot extraction,
// Mongo query synthesis, and friendly response formatting.
type ChatModels struct {
	Extract  *gemini.ChatModel
	Query    *gemini.ChatModel
	Response *gemini.ChatModel
}

// NewChatModels creates the extract, query, and response chat models from one
// shared Gemini client.
func NewChatModels(ctx context.Context, config Config) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	extract, err := newChatModel(ctx, client, config.Extract.Model, config.Extract.Temperature, config.Extract.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("error creating extract model: %w", err)
	}

	query, err := newChatModel(ctx, client, config.Query.Model, config.Query.Temperature, config.Query.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("error creating query model: %w", err)
	}

	response, err := newChatModel(ctx, client, config.Response.Model, config.Response.Temperature, config.Response.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("error creating response model: %w", err)
	}

	return &ChatModels{
		Extract:  extract,
		Query:    query,
		Response: response,
	}, nil
}

func newChatModel(ctx context.Context, client *genai.Client, name string, temperature float32, maxTokens int) (*gemini.ChatModel, error) {
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       name,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Str("model", name).Msg("Error creating chat model")
		return nil, err
	}
	return cm, nil
}
