package catalog

import "github.com/gofiber/fiber/v3"

// SetupRoutes настраивает публичные маршруты справочника
func (s *CatalogService) SetupRoutes(app *fiber.App) {
	app.Get("/api/car-makes", s.GetMakes)
	app.Get("/api/car-models", s.GetModels)
}
