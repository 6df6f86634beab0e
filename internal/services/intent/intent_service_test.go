package intent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/dealer-api/internal/models"
)

type stubCompleter struct {
	content string
	err     error
	last    ChatRequest
	lastCtx context.Context
	calls   int
}

func (s *stubCompleter) Complete(ctx context.Context, req ChatRequest) (string, error) {
	s.calls++
	s.last = req
	s.lastCtx = ctx
	return s.content, s.err
}

func newTestApp(s *IntentService) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ai-intent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestParseIntentSuccess(t *testing.T) {
	completer := &stubCompleter{
		content: `{"filters": {"make": "Toyota", "body_type": "SUV", "price_max": 30000, "color": "red"}, "confidence": 0.92}`,
	}
	app := newTestApp(NewIntentService(completer, "gpt-4o-mini"))

	status, body := post(t, app, `{"userInput": "toyota suv under 30k"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"success": true,
		"parsed_filters": {"make": "Toyota", "body_type": "SUV", "price_max": 30000},
		"confidence": 0.92
	}`, string(body))

	require.Len(t, completer.last.Messages, 2)
	assert.Equal(t, "gpt-4o-mini", completer.last.Model)
	assert.Equal(t, "system", completer.last.Messages[0].Role)
	assert.Equal(t, "toyota suv under 30k", completer.last.Messages[1].Content)
}

func TestParseIntentNothingRecognised(t *testing.T) {
	completer := &stubCompleter{content: `{"filters": {}, "confidence": 0.1}`}
	app := newTestApp(NewIntentService(completer, "m"))

	status, body := post(t, app, `{"userInput": "something nice"}`)
	require.Equal(t, http.StatusOK, status)

	var result models.IntentResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Success)
	assert.Nil(t, result.ParsedFilters)
}

func TestParseIntentErrors(t *testing.T) {
	tests := []struct {
		name      string
		completer *stubCompleter
		body      string
		status    int
		calls     int
	}{
		{"invalid body", &stubCompleter{}, `{"userInput":`, http.StatusBadRequest, 0},
		{"empty input", &stubCompleter{}, `{"userInput": "   "}`, http.StatusBadRequest, 0},
		{"too long", &stubCompleter{}, `{"userInput": "` + strings.Repeat("a", MaxInputLength+1) + `"}`, http.StatusBadRequest, 0},
		{"upstream failure", &stubCompleter{err: errors.New("timeout")}, `{"userInput": "bmw"}`, http.StatusBadGateway, 1},
		{"unparseable output", &stubCompleter{content: "Sorry, I can't help."}, `{"userInput": "bmw"}`, http.StatusUnprocessableEntity, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(NewIntentService(tt.completer, "m"))
			status, body := post(t, app, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, string(body), `"error"`)
			assert.Equal(t, tt.calls, tt.completer.calls)
		})
	}
}

type requestKey struct{}

func TestParseIntentUsesRequestContext(t *testing.T) {
	completer := &stubCompleter{content: `{"filters": {"make": "Audi"}, "confidence": 0.9}`}
	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		c.SetContext(context.WithValue(c.Context(), requestKey{}, "req-42"))
		return c.Next()
	})
	NewIntentService(completer, "m").SetupRoutes(app)

	status, _ := post(t, app, `{"userInput": "audi"}`)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, completer.lastCtx)
	assert.Equal(t, "req-42", completer.lastCtx.Value(requestKey{}))

	_, hasDeadline := completer.lastCtx.Deadline()
	assert.True(t, hasDeadline)
}

func TestOpenAIClientComplete(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"make\":\"BMW\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.Client(), "key", srv.URL+"/v1/")
	content, err := client.Complete(context.Background(), ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: "user", Content: "bmw"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"make":"BMW"}`, content)
	assert.Equal(t, "gpt-4o-mini", got.Model)
}

func TestOpenAIClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewOpenAIClient(srv.Client(), "key", srv.URL).Complete(context.Background(), ChatRequest{})
	assert.ErrorContains(t, err, "status 429")

	_, err = NewOpenAIClient(nil, "", srv.URL).Complete(context.Background(), ChatRequest{})
	assert.ErrorContains(t, err, "api key is empty")
}
