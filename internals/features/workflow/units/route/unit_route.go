package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/constants"
	"bhashaflow_backend/internals/features/workflow/units/controller"
	authMiddleware "bhashaflow_backend/internals/middlewares/auth"
)

// UnitAdminRoutes: /api/a (ingest, patch admin, release admin/assigner)
func UnitAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUnitController(db)

	units := admin.Group("/:kind/units")
	units.Post("/", ctrl.CreateUnit)
	// patch bebas (termasuk status.<lang>) hanya untuk admin
	units.Patch("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("patch unit"), constants.AdminOnly...),
		ctrl.PatchUnit,
	)
	units.Post("/:id/release",
		authMiddleware.OnlyRoles(constants.RoleErrorAssigner("release unit"), constants.AssignerRoles...),
		ctrl.ReleaseUnit,
	)
}

// UnitUserRoutes: /api/u (antrean & detail)
func UnitUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUnitController(db)

	units := user.Group("/:kind/units")
	units.Get("/mine", ctrl.MyQueue)
	units.Get("/:id", ctrl.GetUnit)
	units.Get("/:id/history", ctrl.History)
}
