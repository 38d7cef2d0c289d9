package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/users/workers/dto"
	"bhashaflow_backend/internals/features/users/workers/repository"
	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

type WorkerController struct {
	Repo     *repository.WorkerRepository
	Validate *validator.Validate
}

func NewWorkerController(db *gorm.DB) *WorkerController {
	return &WorkerController{
		Repo:     repository.NewWorkerRepository(db),
		Validate: validator.New(),
	}
}

// 🟢 POST /api/a/workers
func (ctrl *WorkerController) CreateWorker(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := helpersAuth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("hash password")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}
	user, err := req.ToModel(hash)
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Repo.Create(c.UserContext(), user); err != nil {
		return helper.FromError(c, err)
	}

	logrus.WithFields(logrus.Fields{
		"worker": user.UserName,
		"role":   user.Role,
		"by":     helpersAuth.GetUserName(c),
	}).Info("worker created")
	return helper.JsonCreated(c, "Worker berhasil dibuat", dto.FromModel(user))
}

// 🔵 GET /api/a/workers?role=
func (ctrl *WorkerController) ListWorkers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	users, total, err := ctrl.Repo.List(c.UserContext(), c.Query("role"), p.Limit, p.Offset)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(users))
	return helper.JsonList(c, "ok", dto.FromModels(users), &pg)
}

// 🔵 GET /api/a/workers/:id
func (ctrl *WorkerController) GetWorker(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id worker tidak valid")
	}
	user, err := ctrl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(user))
}
