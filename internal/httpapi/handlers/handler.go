package handlers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/bromolabs/bromo-server/internal/ai"
	"github.com/bromolabs/bromo-server/internal/config"
	"github.com/bromolabs/bromo-server/internal/memory"
	"github.com/bromolabs/bromo-server/internal/persona"
	"github.com/bromolabs/bromo-server/internal/pipeline"
	"github.com/bromolabs/bromo-server/internal/store/redisstore"
)

type Handler struct {
	DB      *gorm.DB
	Cfg     config.Config
	Redis   *redisstore.Store
	ChatSvc *pipeline.Service
	MemRepo *memory.Repo
}

func NewHandler(db *gorm.DB, cfg config.Config, rds *redisstore.Store, sink pipeline.Sink) *Handler {
	reg := ai.NewRegistry()
	reg.Register("openai", func(ctx context.Context, model string) (ai.Provider, error) {
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OpenAIModel
		}
		return ai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, m), nil
	})
	reg.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, m), nil
	})

	model := cfg.OpenAIModel
	if strings.EqualFold(cfg.AIProvider, "ollama") {
		model = cfg.OllamaModel
	}

	svc := pipeline.NewService(reg, cfg.AIProvider, model, persona.Default(), sink, cfg.DebugChat)

	return &Handler{
		DB:      db,
		Cfg:     cfg,
		Redis:   rds,
		ChatSvc: svc,
		MemRepo: memory.NewRepo(db),
	}
}
