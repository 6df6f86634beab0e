package intent

import "github.com/gofiber/fiber/v3"

// SetupRoutes настраивает маршрут разбора запросов на естественном языке
func (s *IntentService) SetupRoutes(app *fiber.App) {
	app.Post("/api/ai-intent", s.ParseIntent)
}
