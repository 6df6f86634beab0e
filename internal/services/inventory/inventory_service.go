package inventory

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// InventoryService обслуживает публичный поиск по складу автомобилей
type InventoryService struct {
	repo Repository
}

// NewInventoryService создает новый экземпляр InventoryService
func NewInventoryService(repo Repository) *InventoryService {
	return &InventoryService{repo: repo}
}

// SearchInventory возвращает страницу объявлений, отфильтрованных по параметрам запроса
func (s *InventoryService) SearchInventory(c fiber.Ctx) error {
	params, verr := ParseQuery(c.Queries())
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ResultPage{
			Data:    []models.Listing{},
			Count:   0,
			Page:    DefaultPage,
			Limit:   DefaultLimit,
			Error:   "Invalid query parameters",
			Details: verr.Fields,
		})
	}

	query := BuildSearch(params)

	ctx, cancel := db.GetContext()
	defer cancel()

	listings, total, err := s.repo.Search(ctx, query)
	if err != nil {
		log.Printf("Ошибка получения склада: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ResultPage{
			Data:  []models.Listing{},
			Count: 0,
			Page:  params.Page,
			Limit: params.Limit,
			Error: "Failed to fetch inventory",
		})
	}

	if len(listings) == 0 {
		// Пустой результат не ошибка, но полезно видеть, какие фильтры его дали
		if len(query.Predicates) > 1 {
			log.Printf("Не найдено объявлений по фильтрам: %+v", query.Predicates)
		}
		listings = []models.Listing{}
	}

	return c.JSON(models.ResultPage{
		Data:  listings,
		Count: total,
		Page:  params.Page,
		Limit: params.Limit,
	})
}

// GetListing возвращает карточку публичного объявления
func (s *InventoryService) GetListing(c fiber.Ctx) error {
	// Проверяем, что ID является валидным UUID
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	listing, err := s.repo.Get(ctx, listingID)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		log.Printf("Ошибка получения объявления %s: %v", listingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listing"})
	}

	return c.JSON(listing)
}
