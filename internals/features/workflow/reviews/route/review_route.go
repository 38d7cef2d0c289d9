package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/features/workflow/reviews/controller"
)

// ReviewRoutes: /api/r (admin, reviewer, editor)
func ReviewRoutes(reviewer fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReviewController(db)
	reviewer.Get("/:kind/reviews", ctrl.ListPending)
	reviewer.Post("/:kind/reviews/decide", ctrl.Decide)
}
