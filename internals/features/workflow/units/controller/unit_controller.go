package controller

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/units/dto"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	helper "bhashaflow_backend/internals/helpers"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
	"bhashaflow_backend/internals/metrics"
)

type UnitController struct {
	Store    *repository.UnitStore
	Validate *validator.Validate
}

func NewUnitController(db *gorm.DB) *UnitController {
	return &UnitController{
		Store:    repository.NewUnitStore(db),
		Validate: validator.New(),
	}
}

func parseKindAndID(c *fiber.Ctx) (model.ContentKind, uint, error) {
	kind, err := model.ParseKind(c.Params("kind"))
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil || id == 0 {
		return "", 0, fiber.NewError(fiber.StatusBadRequest, "id unit tidak valid")
	}
	return kind, uint(id), nil
}

// 🟢 POST /api/a/:kind/units
func (ctrl *UnitController) CreateUnit(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	in, err := req.ToNewUnit(kind, helpersAuth.GetUserName(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	unit, err := ctrl.Store.Create(c.UserContext(), in)
	if err != nil {
		return helper.FromError(c, err)
	}
	metrics.RecordTransition(string(kind), "", model.ActionCreate, 1)
	return helper.JsonCreated(c, "Unit berhasil dibuat", dto.FromModel(unit))
}

// 🟡 PATCH /api/a/:kind/units/:id  body: {"status.hi": "pending", "source_ref": "..."}
func (ctrl *UnitController) PatchUnit(c *fiber.Ctx) error {
	kind, id, err := parseKindAndID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	fields := map[string]any{}
	if err := sonic.Unmarshal(c.Body(), &fields); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body harus object JSON")
	}

	unit, err := ctrl.Store.UpdateFields(c.UserContext(), kind, id, fields, helpersAuth.GetUserName(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	metrics.RecordTransition(string(kind), "", model.ActionPatch, 1)
	return helper.JsonUpdated(c, "Unit diperbarui", dto.FromModel(unit))
}

// 🟡 POST /api/a/:kind/units/:id/release
func (ctrl *UnitController) ReleaseUnit(c *fiber.Ctx) error {
	kind, id, err := parseKindAndID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	actor := helpersAuth.GetUserName(c)
	unit, err := ctrl.Store.Release(c.UserContext(), kind, id, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	metrics.RecordTransition(string(kind), "", model.ActionRelease, 1)
	logrus.WithFields(logrus.Fields{"kind": kind, "unit_id": id, "by": actor}).Info("unit released")
	return helper.JsonUpdated(c, "Unit dilepas", dto.FromModel(unit))
}

// 🔵 GET /api/u/:kind/units/:id
func (ctrl *UnitController) GetUnit(c *fiber.Ctx) error {
	kind, id, err := parseKindAndID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	unit, err := ctrl.Store.Find(c.UserContext(), kind, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(unit))
}

// 🔵 GET /api/u/:kind/units/:id/history
func (ctrl *UnitController) History(c *fiber.Ctx) error {
	kind, id, err := parseKindAndID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	events, err := ctrl.Store.History(c.UserContext(), kind, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromEvents(events))
}

// 🔵 GET /api/u/:kind/units/mine?language=
func (ctrl *UnitController) MyQueue(c *fiber.Ctx) error {
	kind, err := model.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromError(c, err)
	}
	var lang *model.Language
	if q := strings.TrimSpace(c.Query("language")); q != "" {
		l, err := model.ParseLanguage(q)
		if err != nil {
			return helper.FromError(c, err)
		}
		lang = &l
	}
	username := helpersAuth.GetUserName(c)
	if username == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	units, err := ctrl.Store.FindAssignedTo(c.UserContext(), kind, username, lang)
	if err != nil {
		return helper.FromError(c, err)
	}
	page, pg := helper.PageSlice(dto.FromModels(units), helper.ResolvePaging(c, 50, 500))
	return helper.JsonList(c, "ok", page, &pg)
}
