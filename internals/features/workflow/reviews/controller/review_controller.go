package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/reviews/dto"
	"bhashaflow_backend/internals/features/workflow/reviews/service"
	unitDTO "bhashaflow_backend/internals/features/workflow/units/dto"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

type ReviewController struct {
	Service  *service.ReviewService
	Validate *validator.Validate
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{
		Service:  service.NewReviewService(repository.NewUnitStore(db)),
		Validate: validator.New(),
	}
}

// 🔵 GET /api/r/:kind/reviews?language=&date_from=&date_to=
func (ctrl *ReviewController) ListPending(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}
	lang, err := model.ParseLanguage(c.Query("language"))
	if err != nil {
		return helper.FromError(c, err)
	}
	var window repository.DateWindow
	if window.From, err = unitDTO.ParseDatePtr(c.Query("date_from")); err != nil {
		return helper.FromError(c, err)
	}
	if window.To, err = unitDTO.ParseDatePtr(c.Query("date_to")); err != nil {
		return helper.FromError(c, err)
	}

	units, err := ctrl.Service.ListPending(c.UserContext(), kind, lang, window)
	if err != nil {
		return helper.FromError(c, err)
	}
	page, pg := helper.PageSlice(unitDTO.FromModels(units), helper.ResolvePaging(c, 50, 500))
	return helper.JsonList(c, "ok", page, &pg)
}

// 🟢 POST /api/r/:kind/reviews/decide
func (ctrl *ReviewController) Decide(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.DecideRequest
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
	res, err := ctrl.Service.Decide(c.UserContext(), in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Keputusan review tersimpan", dto.FromResult(res))
}
