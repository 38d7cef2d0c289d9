package routes

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/configs"
	helper "bhashaflow_backend/internals/helpers"
	"bhashaflow_backend/internals/metrics"
	middlewares "bhashaflow_backend/internals/middlewares"
	"bhashaflow_backend/internals/middlewares/logger"
)

// NewApp merakit fiber.App lengkap dengan middleware & semua route.
func NewApp(db *gorm.DB, cfg *configs.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler:          helper.FromError,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timeout (selaras dengan statement_timeout di DB)
	timeout := cfg.App.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware(cfg.App.CORSOrigins))
	app.Use(middlewares.GlobalRateLimiter(cfg.App.RateLimit))
	if cfg.Metrics.Enabled {
		app.Use(metrics.FiberMiddleware())
	}

	SetupRoutes(app, db, cfg)
	return app
}
