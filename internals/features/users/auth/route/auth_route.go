// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bhashaflow_backend/internals/features/users/auth/controller"
	rateLimiter "bhashaflow_backend/internals/middlewares"
	authMiddleware "bhashaflow_backend/internals/middlewares/auth"
)

// Base: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB, jwtSecret string, accessTTL time.Duration) {
	authController := controller.NewAuthController(db, jwtSecret, accessTTL)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Get("/me", authMiddleware.AuthJWT(jwtSecret), authController.Me)
}
