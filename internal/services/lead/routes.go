package lead

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/dealer-api/internal/middleware"
	"github.com/rajivgeraev/dealer-api/internal/utils"
)

// SetupRoutes настраивает маршруты заявок.
// Создание доступно без авторизации, остальные операции требуют токен.
func (s *LeadService) SetupRoutes(app *fiber.App, jwtService *utils.JWTService) {
	auth := middleware.AuthMiddleware(jwtService)

	app.Post("/api/leads", middleware.OptionalAuthMiddleware(jwtService), s.CreateLead)
	app.Get("/api/leads/:id", auth, s.GetLead)
	app.Patch("/api/leads/:id", auth, s.UpdateLead)
	app.Delete("/api/leads/:id", auth, s.DeleteLead)
}
