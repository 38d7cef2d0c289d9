package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/submissions/dto"
	"bhashaflow_backend/internals/features/workflow/submissions/service"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

type SubmissionController struct {
	Service  *service.SubmissionService
	Validate *validator.Validate
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{
		Service:  service.NewSubmissionService(repository.NewUnitStore(db)),
		Validate: validator.New(),
	}
}

// 🟢 POST /api/u/:kind/submissions
func (ctrl *SubmissionController) Submit(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.SubmitRequest
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
	res, err := ctrl.Service.Submit(c.UserContext(), in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Terjemahan berhasil dikirim", dto.FromResult(res))
}
