package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rajivgeraev/dealer-api/internal/cache"
	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// CatalogService отдает справочник марок и моделей для фильтров
type CatalogService struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewCatalogService создает сервис справочника. cache может быть nil.
func NewCatalogService(repo Repository, c cache.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: repo, cache: c, ttl: ttl}
}

// cached читает значение из кэша или загружает его через load и кладет в кэш.
// Ошибки кэша только логируются.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	var value T
	if s.cache != nil {
		err := s.cache.GetJSON(ctx, key, &value)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Ошибка чтения кэша %s: %v", key, err)
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
			log.Printf("Ошибка записи кэша %s: %v", key, err)
		}
	}
	return value, nil
}

// GetMakes возвращает список марок
func (s *CatalogService) GetMakes(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	makes, err := cached(ctx, s, "makes", s.repo.Makes)
	if err != nil {
		log.Printf("Ошибка получения марок: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch car makes"})
	}
	if makes == nil {
		makes = []models.CarMake{}
	}
	return c.JSON(makes)
}

// GetModels возвращает модели марки, указанной в make_id
func (s *CatalogService) GetModels(c fiber.Ctx) error {
	makeIDStr := c.Query("make_id")
	if makeIDStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "make_id is required"})
	}

	makeID, err := uuid.Parse(makeIDStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid make_id"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	carModels, err := cached(ctx, s, "models:"+makeID.String(), func(ctx context.Context) ([]models.CarModel, error) {
		return s.repo.Models(ctx, makeID)
	})
	if err != nil {
		log.Printf("Ошибка получения моделей марки %s: %v", makeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch car models"})
	}
	if carModels == nil {
		carModels = []models.CarModel{}
	}
	return c.JSON(carModels)
}
