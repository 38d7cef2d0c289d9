package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key Locals yang diisi middleware AuthJWT.
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRole     = "userRole"
)

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocUserID).(string)
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak valid")
	}
	return id, nil
}

func GetUserName(c *fiber.Ctx) string {
	s, _ := c.Locals(LocUserName).(string)
	return strings.TrimSpace(s)
}

func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocRole).(string)
	return strings.ToLower(strings.TrimSpace(s))
}

// SetIdentity dipakai middleware setelah token valid.
func SetIdentity(c *fiber.Ctx, claims *AccessClaims) {
	c.Locals(LocUserID, claims.Subject)
	c.Locals(LocUserName, claims.UserName)
	c.Locals(LocRole, strings.ToLower(claims.Role))
}
