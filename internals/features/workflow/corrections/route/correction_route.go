package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/corrections/controller"
)

// CorrectionRoutes: /api/r (admin, reviewer, editor)
func CorrectionRoutes(reviewer fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCorrectionController(db)
	reviewer.Get("/corrections", ctrl.ListCandidates)
	reviewer.Post("/corrections", ctrl.Apply)
	reviewer.Get("/stats", ctrl.Stats)
}
