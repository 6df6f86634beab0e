package lead

import (
	"errors"
	"log"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/middleware"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

const (
	maxNameLength    = 200
	maxMessageLength = 2000
)

// LeadService обслуживает заявки покупателей
type LeadService struct {
	repo  Repository
	roles db.RoleLookup
}

// NewLeadService создает сервис заявок
func NewLeadService(repo Repository, roles db.RoleLookup) *LeadService {
	return &LeadService{repo: repo, roles: roles}
}

type createLeadRequest struct {
	ListingID  string  `json:"listing_id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	City       *string `json:"city"`
	Message    *string `json:"message"`
	SourceType string  `json:"source_type"`
	SourceID   *string `json:"source_id"`
}

type updateLeadRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	City       *string `json:"city"`
	Message    *string `json:"message"`
	Status     *string `json:"status"`
	SourceType *string `json:"source_type"`
	SourceID   *string `json:"source_id"`
}

// fieldErrors собирает ошибки валидации по полям
type fieldErrors map[string][]string

func (e fieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func invalidInput(c fiber.Ctx, details fieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Invalid input",
		"details": details,
	})
}

// optionalText обрезает пробелы, пустая строка превращается в nil
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validStatus(s string) bool {
	return s == models.LeadStatusNew || s == models.LeadStatusContacted || s == models.LeadStatusClosed
}

func validSource(s string) bool {
	return s == models.LeadSourceOrganic || s == models.LeadSourceTipper
}

// CreateLead принимает заявку с формы объявления
func (s *LeadService) CreateLead(c fiber.Ctx) error {
	var req createLeadRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	errs := fieldErrors{}
	lead := models.Lead{
		Email:      optionalText(req.Email),
		Phone:      optionalText(req.Phone),
		City:       optionalText(req.City),
		Message:    optionalText(req.Message),
		Status:     models.LeadStatusNew,
		SourceType: models.LeadSourceOrganic,
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		errs.add("listing_id", "Invalid uuid")
	}
	lead.ListingID = listingID

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		errs.add("name", "Required")
	case utf8.RuneCountInString(name) > maxNameLength:
		errs.add("name", "String must contain at most 200 character(s)")
	default:
		lead.Name = &name
	}

	if lead.Email != nil && !validEmail(*lead.Email) {
		errs.add("email", "Invalid email")
	}
	if lead.Email == nil && lead.Phone == nil {
		errs.add("email", "Email or phone is required")
	}
	if lead.Message != nil && utf8.RuneCountInString(*lead.Message) > maxMessageLength {
		errs.add("message", "String must contain at most 2000 character(s)")
	}

	if req.SourceType != "" {
		if validSource(req.SourceType) {
			lead.SourceType = req.SourceType
		} else {
			errs.add("source_type", "Invalid enum value. Expected 'organic' | 'tipper'")
		}
	}

	if raw := optionalText(req.SourceID); raw != nil {
		sourceID, err := uuid.Parse(*raw)
		if err != nil {
			errs.add("source_id", "Invalid uuid")
		} else {
			lead.SourceID = &sourceID
		}
	}

	if len(errs) > 0 {
		return invalidInput(c, errs)
	}

	if userID, ok := middleware.UserID(c); ok {
		lead.FromUserID = &userID
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	exists, err := s.repo.ListingExists(ctx, lead.ListingID)
	if err != nil {
		log.Printf("Ошибка проверки объявления %s: %v", lead.ListingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lead"})
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	if err := s.repo.Create(ctx, &lead); err != nil {
		log.Printf("Ошибка создания заявки по объявлению %s: %v", lead.ListingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lead"})
	}

	log.Printf("Создана заявка %s по объявлению %s", lead.ID, lead.ListingID)
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// loadForUser находит заявку и роль текущего пользователя.
// При ошибке ответ уже записан, и вызывающий возвращает err.
func (s *LeadService) loadForUser(c fiber.Ctx) (*models.Lead, models.Role, uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, "", uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		return nil, "", uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			return nil, "", uuid.Nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lead not found"})
		}
		log.Printf("Ошибка получения заявки %s: %v", id, err)
		return nil, "", uuid.Nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch lead"})
	}

	role, err := s.roles.UserRole(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, "", uuid.Nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		log.Printf("Ошибка получения роли пользователя %s: %v", userID, err)
		return nil, "", uuid.Nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify role"})
	}

	return lead, role, userID, nil
}

// GetLead возвращает заявку, если роль пользователя это позволяет
func (s *LeadService) GetLead(c fiber.Ctx) error {
	lead, role, userID, err := s.loadForUser(c)
	if lead == nil {
		return err
	}

	if !canView(role, userID, lead) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	return c.JSON(lead)
}

// UpdateLead частично обновляет заявку
func (s *LeadService) UpdateLead(c fiber.Ctx) error {
	if _, err := uuid.Parse(c.Params("id")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var req updateLeadRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	upd, errs := req.validate()
	if len(errs) > 0 {
		return invalidInput(c, errs)
	}

	lead, role, userID, err := s.loadForUser(c)
	if lead == nil {
		return err
	}

	if !canUpdate(role, userID, lead) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	updated, err := s.repo.Update(ctx, lead.ID, upd)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lead not found"})
		}
		log.Printf("Ошибка обновления заявки %s: %v", lead.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update lead"})
	}

	return c.JSON(updated)
}

// DeleteLead удаляет заявку
func (s *LeadService) DeleteLead(c fiber.Ctx) error {
	lead, role, userID, err := s.loadForUser(c)
	if lead == nil {
		return err
	}

	if !canDelete(role, userID, lead) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	if err := s.repo.Delete(ctx, lead.ID); err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lead not found"})
		}
		log.Printf("Ошибка удаления заявки %s: %v", lead.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete lead"})
	}

	log.Printf("Заявка %s удалена пользователем %s", lead.ID, userID)
	return c.JSON(fiber.Map{"message": "Lead deleted"})
}

// validate проверяет поля обновления
func (r updateLeadRequest) validate() (models.LeadUpdate, fieldErrors) {
	errs := fieldErrors{}
	upd := models.LeadUpdate{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		City:    r.City,
		Message: r.Message,
	}

	if r.Name != nil && utf8.RuneCountInString(*r.Name) > maxNameLength {
		errs.add("name", "String must contain at most 200 character(s)")
	}
	if r.Email != nil && !validEmail(*r.Email) {
		errs.add("email", "Invalid email")
	}
	if r.Message != nil && utf8.RuneCountInString(*r.Message) > maxMessageLength {
		errs.add("message", "String must contain at most 2000 character(s)")
	}

	if r.Status != nil {
		if validStatus(*r.Status) {
			upd.Status = r.Status
		} else {
			errs.add("status", "Invalid enum value. Expected 'new' | 'contacted' | 'closed', received '"+*r.Status+"'")
		}
	}

	if r.SourceType != nil {
		if validSource(*r.SourceType) {
			upd.SourceType = r.SourceType
		} else {
			errs.add("source_type", "Invalid enum value. Expected 'organic' | 'tipper', received '"+*r.SourceType+"'")
		}
	}

	if r.SourceID != nil {
		sourceID, err := uuid.Parse(*r.SourceID)
		if err != nil {
			errs.add("source_id", "Invalid uuid")
		} else {
			upd.SourceID = &sourceID
		}
	}

	return upd, errs
}
