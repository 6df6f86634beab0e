package intent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/dealer-api/internal/models"
)

// MaxInputLength ограничивает длину свободного текста запроса
const MaxInputLength = 500

var (
	// ErrEmptyInput возвращается для пустого текста запроса
	ErrEmptyInput = errors.New("userInput is required")
	// ErrInputTooLong возвращается, если текст длиннее MaxInputLength символов
	ErrInputTooLong = fmt.Errorf("userInput must be at most %d characters", MaxInputLength)
	// ErrUpstream оборачивает ошибки обращения к языковой модели
	ErrUpstream = errors.New("language model request failed")
)

const systemPrompt = `You convert a car buyer's free-text request into inventory search filters.
Reply with a single JSON object and nothing else:
{"filters": {...}, "confidence": <number between 0 and 1>}
Allowed filter keys: make, model, body_type, fuel_type, transmission, condition,
year_min, year_max, price_min, price_max, mileage_min, mileage_max.
condition is "new" or "used". Years, prices (USD) and mileage are plain integers.
Omit every key the request does not mention. confidence is how sure you are that
the filters capture the request.`

// IntentService переводит свободный текст в набор фильтров поиска
type IntentService struct {
	client  Completer
	model   string
	timeout time.Duration
}

// NewIntentService создает сервис разбора запросов
func NewIntentService(client Completer, model string) *IntentService {
	return &IntentService{
		client:  client,
		model:   model,
		timeout: 25 * time.Second,
	}
}

type intentRequest struct {
	UserInput string `json:"userInput"`
}

// Parse разбирает текст запроса. Если модель не извлекла ни одного фильтра,
// результат имеет Success=false и пустые ParsedFilters.
func (s *IntentService) Parse(ctx context.Context, input string) (models.IntentResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.IntentResult{}, ErrEmptyInput
	}
	if utf8.RuneCountInString(input) > MaxInputLength {
		return models.IntentResult{}, ErrInputTooLong
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.client.Complete(llmCtx, ChatRequest{
		Model:       s.model,
		Temperature: 0,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: input},
		},
	})
	if err != nil {
		return models.IntentResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	obj, err := parseObject(content)
	if err != nil {
		return models.IntentResult{}, err
	}

	filters, confidence := extract(obj)
	if empty(filters) {
		return models.IntentResult{Success: false, Confidence: confidence}, nil
	}

	return models.IntentResult{
		Success:       true,
		ParsedFilters: filters,
		Confidence:    confidence,
	}, nil
}

// ParseIntent обрабатывает POST /api/ai-intent
func (s *IntentService) ParseIntent(c fiber.Ctx) error {
	var req intentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := s.Parse(c.Context(), req.UserInput)
	switch {
	case err == nil:
		return c.JSON(result)
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrInputTooLong):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrUpstream):
		log.Printf("Ошибка запроса к языковой модели: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Intent service unavailable"})
	case errors.Is(err, ErrUnparseable):
		log.Printf("Не удалось разобрать ответ языковой модели для запроса %q", req.UserInput)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Could not interpret the search request"})
	default:
		log.Printf("Ошибка разбора запроса: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
