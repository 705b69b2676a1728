package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/partsflow/backend/internal/domain"
	api "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const parsePrompt = `
You are an AI assistant that helps parse automotive parts procurement queries.
Extract the following information from the user's query and return it as a JSON object:

- product_category: The category of the automotive part (e.g., brakes, filters, engine, etc.)
- product_name: The specific name of the product (e.g., brake pads, air filter, etc.)
- brand: The brand preference if mentioned
- quantity: The number of units needed (extract as number)
- urgency: The urgency level (high, medium, low) if mentioned
- price_preference: The price preference (budget, mid-range, premium) if mentioned

If any information is not mentioned, use null for that field.

Query: %q

Return only the JSON object, no additional text.
`

// Config holds settings for the OpenAI-backed query parser.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional API base override
	Timeout time.Duration
}

// Client parses procurement queries through the OpenAI chat API. It
// implements domain.QueryParser; callers fall back to rule-based parsing
// whenever ParseQuery returns an error.
type Client struct {
	api         *api.Client
	model       string
	timeout     time.Duration
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates an OpenAI query parser client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	clientCfg := api.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = api.GPT4
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// One request per second with a small burst keeps a chatty demo well
	// under the API quota
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		api:         api.NewClientWithConfig(clientCfg),
		model:       model,
		timeout:     timeout,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// ParseQuery sends the query to the chat API with a fixed instruction
// prompt and decodes the JSON object it returns. The call is bounded by the
// configured timeout so a slow backend never blocks a request.
func (c *Client) ParseQuery(ctx context.Context, query string) (*domain.ParsedQuery, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, api.ChatCompletionRequest{
		Model: c.model,
		Messages: []api.ChatCompletionMessage{
			{
				Role:    api.ChatMessageRoleSystem,
				Content: "You are a helpful assistant that parses automotive parts queries and returns structured JSON data.",
			},
			{
				Role:    api.ChatMessageRoleUser,
				Content: fmt.Sprintf(parsePrompt, query),
			},
		},
		Temperature: 0.1,
		MaxTokens:   200,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", domain.ErrAIResponseInvalid)
	}

	content := resp.Choices[0].Message.Content
	parsed, err := decodeParsedQuery(content)
	if err != nil {
		c.logger.Warn("undecodable AI parse response",
			zap.String("content", content),
			zap.Error(err))
		return nil, err
	}

	return parsed, nil
}

// decodeParsedQuery extracts a ParsedQuery from the model's reply, tolerating
// markdown code fences around the JSON object.
func decodeParsedQuery(content string) (*domain.ParsedQuery, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var parsed domain.ParsedQuery
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAIResponseInvalid, err)
	}
	return &parsed, nil
}
