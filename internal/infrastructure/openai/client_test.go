package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/partsflow/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestClient points the client at a stub chat completions endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		APIKey:  "test-key",
		Model:   "gpt-4",
		BaseURL: server.URL + "/v1",
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	return client, server
}

func completionResponse(content string) []byte {
	body := map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4",
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
	data, _ := json.Marshal(body)
	return data
}

func TestParseQuery(t *testing.T) {
	t.Run("decodes a clean JSON reply", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write(completionResponse(`{"product_category": "brakes", "product_name": "brake pads", "brand": "Toyota", "quantity": 50, "urgency": null, "price_preference": null}`))
		})

		parsed, err := client.ParseQuery(context.Background(), "50 brake pads for Toyota")
		require.NoError(t, err)
		require.NotNil(t, parsed.ProductCategory)
		assert.Equal(t, "brakes", *parsed.ProductCategory)
		require.NotNil(t, parsed.Quantity)
		assert.Equal(t, 50, *parsed.Quantity)
		assert.Nil(t, parsed.Urgency)
	})

	t.Run("tolerates markdown code fences", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write(completionResponse("```json\n{\"product_category\": \"filters\", \"product_name\": null, \"brand\": null, \"quantity\": null, \"urgency\": null, \"price_preference\": null}\n```"))
		})

		parsed, err := client.ParseQuery(context.Background(), "air filters")
		require.NoError(t, err)
		require.NotNil(t, parsed.ProductCategory)
		assert.Equal(t, "filters", *parsed.ProductCategory)
	})

	t.Run("non-JSON reply is an invalid-response error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write(completionResponse("Sure! The category is brakes."))
		})

		_, err := client.ParseQuery(context.Background(), "brake pads")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAIResponseInvalid))
	})

	t.Run("backend failure is an unavailable error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
		})

		_, err := client.ParseQuery(context.Background(), "brake pads")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAIUnavailable))
	})

	t.Run("slow backend hits the timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		t.Cleanup(func() {
			close(release)
			server.Close()
		})

		client := NewClient(Config{
			APIKey:  "test-key",
			BaseURL: server.URL + "/v1",
			Timeout: 50 * time.Millisecond,
		}, zap.NewNop())

		_, err := client.ParseQuery(context.Background(), "brake pads")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAIUnavailable))
	})
}

func TestDecodeParsedQuery(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		parsed, err := decodeParsedQuery(`{"product_category": "engine", "quantity": 8}`)
		require.NoError(t, err)
		assert.Equal(t, "engine", *parsed.ProductCategory)
		assert.Equal(t, 8, *parsed.Quantity)
	})

	t.Run("fenced object", func(t *testing.T) {
		parsed, err := decodeParsedQuery("```\n{\"product_category\": \"engine\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "engine", *parsed.ProductCategory)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := decodeParsedQuery("")
		assert.True(t, errors.Is(err, domain.ErrAIResponseInvalid))
	})
}
