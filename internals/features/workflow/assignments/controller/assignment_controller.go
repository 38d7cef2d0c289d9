package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	workerRepo "bhashaflow_backend/internals/features/users/workers/repository"
	"bhashaflow_backend/internals/features/workflow/assignments/dto"
	"bhashaflow_backend/internals/features/workflow/assignments/service"
	"bhashaflow_backend/internals/features/workflow/units/model"
	unitRepo "bhashaflow_backend/internals/features/workflow/units/repository"
	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

type AssignmentController struct {
	Service  *service.AssignmentService
	Validate *validator.Validate
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{
		Service: service.NewAssignmentService(
			unitRepo.NewUnitStore(db),
			workerRepo.NewWorkerRepository(db),
		),
		Validate: validator.New(),
	}
}

// 🟢 POST /api/a/:kind/assignments
func (ctrl *AssignmentController) Assign(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	in, err := req.ToInput(kind, helpersAuth.GetUserName(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := ctrl.Service.Assign(c.UserContext(), in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Unit berhasil di-assign", dto.FromResult(res))
}
