package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			logrus.WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"reqid":  c.Locals("reqid"),
			}).Errorf("panic: %v", e)
		},
	})
}
