package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/submissions/controller"
)

// SubmissionUserRoutes: /api/u, semua worker yang login
func SubmissionUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubmissionController(db)
	user.Post("/:kind/submissions", ctrl.Submit)
}
