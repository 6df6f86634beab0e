package tracking

import "github.com/gofiber/fiber/v3"

// SetupRoutes настраивает маршруты аналитики поиска
func (s *TrackingService) SetupRoutes(app *fiber.App) {
	app.Post("/api/track/search", s.TrackSearch)
}
