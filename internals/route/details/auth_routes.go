package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/configs"
	authRoute "bhashaflow_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, cfg configs.JWTConfig) {
	authRoute.AuthRoutes(app, db, cfg.Secret, cfg.AccessTTL)
}
