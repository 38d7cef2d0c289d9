package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/corrections/dto"
	"bhashaflow_backend/internals/features/workflow/corrections/service"
	unitDTO "bhashaflow_backend/internals/features/workflow/units/dto"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

type CorrectionController struct {
	Service  *service.CorrectionService
	Validate *validator.Validate
}

func NewCorrectionController(db *gorm.DB) *CorrectionController {
	return &CorrectionController{
		Service:  service.NewCorrectionService(repository.NewUnitStore(db)),
		Validate: validator.New(),
	}
}

// 🔵 GET /api/r/corrections?kind=&language=&date=
func (ctrl *CorrectionController) ListCandidates(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Query("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}
	lang, err := model.ParseLanguage(c.Query("language"))
	if err != nil {
		return helper.FromError(c, err)
	}
	date, err := unitDTO.ParseDatePtr(c.Query("date"))
	if err != nil {
		return helper.FromError(c, err)
	}

	units, err := ctrl.Service.Candidates(c.UserContext(), kind, lang, date)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"items": unitDTO.FromModels(units)})
}

// 🟢 POST /api/r/corrections
func (ctrl *CorrectionController) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	in, err := req.ToInput(helpersAuth.GetUserName(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	unit, err := ctrl.Service.Apply(c.UserContext(), in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Koreksi tersimpan", fiber.Map{"item": unitDTO.FromModel(unit)})
}

// 🔵 GET /api/r/stats?kind=&language=
func (ctrl *CorrectionController) Stats(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Query("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}
	lang, err := dto.ParseOptionalLanguage(c.Query("language"))
	if err != nil {
		return helper.FromError(c, err)
	}
	stats, err := ctrl.Service.Stats(c.UserContext(), kind, lang)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", stats)
}
