package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/logger"
	"github.com/takibiapp/takibi-server/internal/ratelimit"
	"github.com/takibiapp/takibi-server/internal/recipe"
	"github.com/takibiapp/takibi-server/internal/suggest"
)

// SuggestClientHandle wraps the AI suggestion client. Client is nil when
// no API key is configured; the server runs fine without it.
type SuggestClientHandle struct {
	Client  *suggest.Client
	limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *SuggestClientHandle) Shutdown() error {
	if h.limiter != nil {
		h.limiter.Stop()
	}
	return nil
}

// ProvideSuggestClient provides the Gemini-backed recipe suggestion client.
func ProvideSuggestClient(i do.Injector) (*SuggestClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.AIEnabled() {
		log.Info("AI suggestions disabled - no Gemini API key configured")
		return &SuggestClientHandle{}, nil
	}

	validator := do.MustInvoke[*recipe.Validator](i)

	limiter := ratelimit.New(float64(cfg.AI.RequestsPerMinute)/60.0, cfg.AI.RequestsPerMinute)

	client, err := suggest.NewClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model, limiter, validator, log.Logger)
	if err != nil {
		limiter.Stop()
		return nil, err
	}

	log.Info("AI suggestion client initialized", "model", cfg.AI.Model, "rpm", cfg.AI.RequestsPerMinute)

	return &SuggestClientHandle{Client: client, limiter: limiter}, nil
}
