package tracking

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

const maxFilterValueLength = 100

// TrackingService принимает события поиска для аналитики
type TrackingService struct {
	repo Repository
}

// NewTrackingService создает сервис аналитики поиска
func NewTrackingService(repo Repository) *TrackingService {
	return &TrackingService{repo: repo}
}

type trackSearchRequest struct {
	SessionID        string            `json:"session_id"`
	MakeID           *string           `json:"make_id"`
	ModelID          *string           `json:"model_id"`
	Filters          map[string]string `json:"filters"`
	ClickedListingID *string           `json:"clicked_listing_id"`
}

// optionalUUID разбирает необязательный идентификатор, пустая строка равна null
func optionalUUID(s *string) (*uuid.UUID, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// TrackSearch сохраняет событие поиска
func (s *TrackingService) TrackSearch(c fiber.Ctx) error {
	var req trackSearchRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	details := map[string][]string{}
	event := models.SearchEvent{Filters: map[string]string{}}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		details["session_id"] = append(details["session_id"], "Invalid uuid")
	}
	event.SessionID = sessionID

	var ok bool
	if event.MakeID, ok = optionalUUID(req.MakeID); !ok {
		details["make_id"] = append(details["make_id"], "Invalid uuid")
	}
	if event.ModelID, ok = optionalUUID(req.ModelID); !ok {
		details["model_id"] = append(details["model_id"], "Invalid uuid")
	}
	if event.ClickedListingID, ok = optionalUUID(req.ClickedListingID); !ok {
		details["clicked_listing_id"] = append(details["clicked_listing_id"], "Invalid uuid")
	}

	for k, v := range req.Filters {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, "any") {
			continue
		}
		if len(v) > maxFilterValueLength {
			details["filters"] = append(details["filters"], "Value of "+k+" is too long")
			continue
		}
		event.Filters[k] = v
	}

	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": details,
		})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	if err := s.repo.Record(ctx, &event); err != nil {
		log.Printf("❌ Ошибка сохранения события поиска: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to track search"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": event.ID})
}
