package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/users/auth/service"
	workerDTO "bhashaflow_backend/internals/features/users/workers/dto"
	workerRepo "bhashaflow_backend/internals/features/users/workers/repository"
	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

type AuthController struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB, jwtSecret string, accessTTL time.Duration) *AuthController {
	return &AuthController{
		Service:  service.NewAuthService(workerRepo.NewWorkerRepository(db), jwtSecret, accessTTL),
		Validate: validator.New(),
	}
}

type loginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// 🔓 POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ac.Service.Login(c.UserContext(), req.UserName, req.Password)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_name": req.UserName, "ip": c.IP()}).Warn("login gagal")
		return helper.FromError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": res.AccessToken,
		"expires_at":   res.ExpiresAt,
		"worker":       workerDTO.FromModel(res.Worker),
	})
}

// 🔵 GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := helpersAuth.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	user, err := ac.Service.Me(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", workerDTO.FromModel(user))
}
