// Package suggest generates camp recipe suggestions using the Gemini
// generative-language API. Responses are arbitrary model output and are
// treated as untrusted input: every suggested recipe passes the schema
// validator before it reaches the caller.
package suggest

import (
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/ratelimit"
	"github.com/takibiapp/takibi-server/internal/recipe"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"

	// rateKey is the limiter bucket shared by all outbound Gemini calls.
	rateKey = "gemini"

	// maxAttempts bounds retries on transient API failures.
	maxAttempts = 3

	defaultCount = 3
	maxCount     = 5
)

// Request describes the constraints for a suggestion round.
type Request struct {
	Meal        domain.MealType
	PartySize   int
	Season      string
	Equipment   []string
	HeatSources []string
	Vegetarian  bool
	Count       int
	// ExcludeNames lists dishes the user already has, so the model
	// does not repeat them.
	ExcludeNames []string
}

// Client calls the Gemini API and validates what comes back.
type Client struct {
	client    *genai.Client
	model     string
	limiter   *ratelimit.KeyedRateLimiter
	validator *recipe.Validator
	logger    *slog.Logger
}

// NewClient creates a suggestion client.
// The limiter throttles outbound calls; the validator filters the response.
func NewClient(ctx context.Context, apiKey, model string, limiter *ratelimit.KeyedRateLimiter, validator *recipe.Validator, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.Validation("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Internalf("failed to create genai client: %v", err)
	}

	return &Client{
		client:    client,
		model:     model,
		limiter:   limiter,
		validator: validator,
		logger:    logger,
	}, nil
}

// Suggest asks the model for recipes matching the request and returns the
// ones that pass schema validation. Invalid records are filtered and logged
// by the validator, not surfaced as errors.
func (c *Client) Suggest(ctx context.Context, req Request) ([]domain.Recipe, error) {
	if req.Count <= 0 {
		req.Count = defaultCount
	}
	if req.Count > maxCount {
		req.Count = maxCount
	}

	if err := c.limiter.Wait(ctx, rateKey); err != nil {
		return nil, errors.RateLimited("suggestion rate limit reached").WithCause(err)
	}

	prompt := buildPrompt(req)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONArray(text)
	if err != nil {
		c.logger.Warn("suggestion response is not a JSON array", "error", err)
		return nil, errors.Internal("suggestion response could not be parsed")
	}

	var records []jsontext.Value
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.Warn("suggestion response failed to decode", "error", err)
		return nil, errors.Internal("suggestion response could not be parsed")
	}

	recipes := c.validator.ValidateMany(records)
	if len(recipes) == 0 && len(records) > 0 {
		return nil, errors.Internal("suggestion response contained no valid recipes")
	}

	c.logger.Info("recipes suggested",
		"requested", req.Count,
		"returned", len(recipes),
		"model", c.model,
	)
	return recipes, nil
}

// generate calls the model with bounded retries on transient failures.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.8),
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.client.Models.GenerateContent(ctx,
			c.model,
			genai.Text(prompt),
			config,
		)
		if err == nil {
			return result.Text(), nil
		}
		lastErr = err

		if !isTransient(err) {
			break
		}

		c.logger.Warn("gemini call failed, retrying",
			"attempt", attempt,
			"error", err,
		)

		// Exponential backoff: 1s, 2s.
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			}
		}
	}

	return "", errors.Unavailable("recipe suggestion service is unavailable").WithCause(lastErr)
}

// isTransient reports whether the API error is worth retrying.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return false
}

// extractJSONArray pulls the outermost JSON array out of model output.
// Models wrap JSON in markdown fences or prose often enough that taking
// the span between the first '[' and the last ']' is the reliable path.
func extractJSONArray(text string) (jsontext.Value, error) {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end <= start {
		return nil, errors.Validation("no JSON array found in response")
	}
	return jsontext.Value(text[start : end+1]), nil
}
