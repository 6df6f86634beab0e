// Package apiclient HTTP-клиент публичного API склада.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rajivgeraev/dealer-api/internal/models"
)

var (
	// ErrUnexpectedFormat ответ поиска не является ни конвертом, ни массивом объявлений
	ErrUnexpectedFormat = errors.New("unexpected response format")
	// ErrIntentNotUnderstood сервис не смог извлечь фильтры из текста
	ErrIntentNotUnderstood = errors.New("could not understand your search")
)

// APIError ответ сервера со статусом не 2xx
type APIError struct {
	Status  int
	Message string
	Details map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Client обращается к эндпоинтам поиска, справочника и разбора запросов
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New создает клиент. При nil httpClient используется клиент с таймаутом 30 секунд.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Search выполняет GET /api/inventory с параметрами q.
// Поддерживается и конверт {data, count, page, limit}, и голый массив объявлений.
func (c *Client) Search(ctx context.Context, q url.Values) (models.ResultPage, error) {
	endpoint := c.baseURL + "/api/inventory"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.ResultPage{}, err
	}
	return decodePage(data)
}

func decodePage(data []byte) (models.ResultPage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return models.ResultPage{}, ErrUnexpectedFormat
	}

	switch trimmed[0] {
	case '[':
		var listings []models.Listing
		if err := json.Unmarshal(trimmed, &listings); err != nil {
			return models.ResultPage{}, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		return models.ResultPage{Data: listings, Count: len(listings)}, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return models.ResultPage{}, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		if _, ok := fields["data"]; !ok {
			return models.ResultPage{}, ErrUnexpectedFormat
		}
		var page models.ResultPage
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return models.ResultPage{}, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		if page.Data == nil {
			page.Data = []models.Listing{}
		}
		return page, nil
	}
	return models.ResultPage{}, ErrUnexpectedFormat
}

// Listing возвращает карточку объявления
func (c *Client) Listing(ctx context.Context, id uuid.UUID) (models.Listing, error) {
	data, err := c.do(ctx, http.MethodGet, c.baseURL+"/api/inventory/"+id.String(), nil)
	if err != nil {
		return models.Listing{}, err
	}
	var listing models.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return models.Listing{}, fmt.Errorf("decode response: %w", err)
	}
	return listing, nil
}

// ParseIntent отправляет свободный текст в POST /api/ai-intent
func (c *Client) ParseIntent(ctx context.Context, text string) (models.IntentResult, error) {
	body, err := json.Marshal(map[string]string{"userInput": text})
	if err != nil {
		return models.IntentResult{}, fmt.Errorf("marshal request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/ai-intent", body)
	if err != nil {
		return models.IntentResult{}, err
	}

	var result models.IntentResult
	if err := json.Unmarshal(data, &result); err != nil {
		return models.IntentResult{}, fmt.Errorf("decode response: %w", err)
	}
	if !result.Success || result.ParsedFilters == nil {
		return result, ErrIntentNotUnderstood
	}
	return result, nil
}

// Makes возвращает справочник марок
func (c *Client) Makes(ctx context.Context) ([]models.CarMake, error) {
	data, err := c.do(ctx, http.MethodGet, c.baseURL+"/api/car-makes", nil)
	if err != nil {
		return nil, err
	}
	var makes []models.CarMake
	if err := json.Unmarshal(data, &makes); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return makes, nil
}

// Models возвращает модели марки
func (c *Client) Models(ctx context.Context, makeID uuid.UUID) ([]models.CarModel, error) {
	endpoint := c.baseURL + "/api/car-models?" + url.Values{"make_id": {makeID.String()}}.Encode()
	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var carModels []models.CarModel
	if err := json.Unmarshal(data, &carModels); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return carModels, nil
}

// TrackSearch отправляет событие поиска в POST /api/track/search
func (c *Client) TrackSearch(ctx context.Context, event models.SearchEvent) error {
	body, err := json.Marshal(map[string]any{
		"session_id":         event.SessionID,
		"make_id":            event.MakeID,
		"model_id":           event.ModelID,
		"filters":            event.Filters,
		"clicked_listing_id": event.ClickedListingID,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, c.baseURL+"/api/track/search", body)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error   string              `json:"error"`
			Details map[string][]string `json:"details"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
			apiErr.Details = envelope.Details
		} else {
			apiErr.Message = strings.TrimSpace(string(data[:min(len(data), 2048)]))
		}
		return nil, apiErr
	}

	return data, nil
}
