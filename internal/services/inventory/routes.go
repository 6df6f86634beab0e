package inventory

import "github.com/gofiber/fiber/v3"

// SetupRoutes настраивает публичные маршруты поиска
func (s *InventoryService) SetupRoutes(app *fiber.App) {
	app.Get("/api/inventory", s.SearchInventory)
	app.Get("/api/inventory/:id", s.GetListing)
}
