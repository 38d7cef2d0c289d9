package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/constants"
	"bhashaflow_backend/internals/features/workflow/assignments/controller"
	authMiddleware "bhashaflow_backend/internals/middlewares/auth"
)

func AssignmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAssignmentController(db)

	admin.Post("/:kind/assignments",
		authMiddleware.OnlyRoles(constants.RoleErrorAssigner("assignment"), constants.AssignerRoles...),
		ctrl.Assign,
	)
}
