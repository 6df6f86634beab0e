package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/rajivgeraev/dealer-api/internal/cache"
	"github.com/rajivgeraev/dealer-api/internal/config"
	"github.com/rajivgeraev/dealer-api/internal/db"
	"github.com/rajivgeraev/dealer-api/internal/services/catalog"
	"github.com/rajivgeraev/dealer-api/internal/services/intent"
	"github.com/rajivgeraev/dealer-api/internal/services/inventory"
	"github.com/rajivgeraev/dealer-api/internal/services/lead"
	"github.com/rajivgeraev/dealer-api/internal/services/tracking"
	"github.com/rajivgeraev/dealer-api/internal/utils"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации: %v", err)
	}

	// Инициализируем базу данных
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("❌ Ошибка при инициализации базы данных: %v", err)
	}
	defer db.CloseDB()

	// Подключаем кэш справочников, если он настроен
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := cache.Connect(ctx, cfg.RedisConfig)
	cancel()
	if err != nil {
		log.Printf("⚠️ Кэш справочников отключен: %v", err)
	}
	var catalogCache cache.Cache
	if rdb != nil {
		defer rdb.Close()
		catalogCache = cache.NewRedisCache(rdb, "dealer:catalog:")
	}

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Dealer Inventory API",
		ErrorHandler: errorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))

	// Создаём сервисы
	jwtService := utils.NewJWTService(cfg.JWTSecret)
	inventoryService := inventory.NewInventoryService(inventory.NewPgRepository(db.Pool))
	catalogService := catalog.NewCatalogService(catalog.NewPgRepository(db.Pool), catalogCache, cfg.CatalogTTL)
	intentService := intent.NewIntentService(
		intent.NewOpenAIClient(nil, cfg.IntentConfig.APIKey, cfg.IntentConfig.BaseURL),
		cfg.IntentConfig.Model,
	)
	leadService := lead.NewLeadService(lead.NewPgRepository(db.Pool), db.NewUserStore(db.Pool))
	trackingService := tracking.NewTrackingService(tracking.NewPgRepository(db.Pool))

	if cfg.IntentConfig.APIKey == "" {
		log.Println("⚠️ OPENAI_API_KEY не задан, разбор запросов будет отвечать 502")
	}

	// Регистрируем маршруты
	inventoryService.SetupRoutes(app)
	catalogService.SetupRoutes(app)
	intentService.SetupRoutes(app)
	leadService.SetupRoutes(app, jwtService)
	trackingService.SetupRoutes(app)

	// Запускаем сервер
	log.Printf("✅ Dealer API (%s) запущен на порту %s", cfg.AppEnv, cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// errorHandler обрабатывает ошибки Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	// Проверяем, является ли ошибка из Fiber
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	// Отправляем ошибку в JSON
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
