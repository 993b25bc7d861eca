package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/revozen-chatbot/server/internal/agent"
	"github.com/revozen-chatbot/server/internal/agent/extract"
	"github.com/revozen-chatbot/server/internal/agent/freequery"
	"github.com/revozen-chatbot/server/internal/agent/intents"
	"github.com/revozen-chatbot/server/internal/agent/llm"
	"github.com/revozen-chatbot/server/internal/agent/model"
	"github.com/revozen-chatbot/server/internal/agent/repo"
	"github.com/revozen-chatbot/server/internal/agent/session"
	"github.com/revozen-chatbot/server/internal/core"
	httpserver "github.com/revozen-chatbot/server/internal/server"
	logx "github.com/revozen-chatbot/server/pkg/logger"
	pkgmongo "github.com/revozen-chatbot/server/pkg/mongo"
	pkgredis "github.com/revozen-chatbot/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the chatbot service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8000"`

	// Infrastructure
	Redis pkgredis.Config
	Mongo pkgmongo.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Pipeline configs
	Extract  model.ExtractModelConfig
	Query    model.QueryModelConfig
	Response model.ResponseModelConfig
	Session  model.SessionConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Session.TTL).Msg("Invalid SESSION_TTL")
	}

	// MongoDB holds the tyre dataset; required.
	mongoClient, err := cfg.Mongo.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.Mongo.Database)
	logx.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	// Redis backs session context and chat memory; optional.
	var sessions model.SessionStore = session.NewMemoryStore()
	var memory model.ConversationRepository
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, ttl)
		memory = repo.NewRedisConversationRepository(rdb, ttl)
		logx.Info().Msg("Connected to Redis")
	} else {
		logx.Info().Msg("REDIS_URL not set, using in-memory sessions without chat memory")
	}

	chatModels, err := llm.NewChatModels(ctx, llm.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Extract:  &cfg.Extract,
		Query:    &cfg.Query,
		Response: &cfg.Response,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create chat models")
	}

	answerer := intents.NewAnswerer(repo.NewTyreRepository(db), repo.NewOrderRepository(db))
	askService := agent.NewAskService(extract.New(chatModels.Extract), sessions, answerer)
	chatService := freequery.NewService(chatModels.Query, chatModels.Response, freequery.NewMongoExecutor(db), memory)

	srv := httpserver.New(askService, chatService)

	logx.Info().Str("addr", cfg.ListenAddr).Msg("HTTP server listening")
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		logx.Fatal().Err(err).Msg("HTTP server stopped")
	}
}
