// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

// Public path yang di-skip auth
var skipPaths = map[string]struct{}{
	"/api/auth/login": {},
}

// AuthJWT memverifikasi access token (Bearer atau cookie access_token)
// lalu menyimpan user_id, user_name, role ke Locals.
func AuthJWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}
		if secret == "" {
			logrus.Error("[auth] JWT secret kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		claims, err := helpersAuth.ParseAccessToken(secret, raw)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.Path(),
				"reqid": c.Locals("reqid"),
			}).Debug("[auth] token ditolak")
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		helper.SetRawAccessToken(c, raw)
		helpersAuth.SetIdentity(c, claims)
		return c.Next()
	}
}
