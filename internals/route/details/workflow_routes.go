package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentRoute "bhashaflow_backend/internals/features/workflow/assignments/route"
	correctionRoute "bhashaflow_backend/internals/features/workflow/corrections/route"
	reviewRoute "bhashaflow_backend/internals/features/workflow/reviews/route"
	submissionRoute "bhashaflow_backend/internals/features/workflow/submissions/route"
	unitRoute "bhashaflow_backend/internals/features/workflow/units/route"
)

// 🔐 /api/a : ingest unit + assignment
func WorkflowAdminRoutes(admin fiber.Router, db *gorm.DB) {
	unitRoute.UnitAdminRoutes(admin, db)
	assignmentRoute.AssignmentAdminRoutes(admin, db)
}

// 👤 /api/u : antrean worker + submission
func WorkflowUserRoutes(user fiber.Router, db *gorm.DB) {
	unitRoute.UnitUserRoutes(user, db)
	submissionRoute.SubmissionUserRoutes(user, db)
}

// 🧐 /api/r : review, koreksi, statistik
func WorkflowReviewerRoutes(reviewer fiber.Router, db *gorm.DB) {
	reviewRoute.ReviewRoutes(reviewer, db)
	correctionRoute.CorrectionRoutes(reviewer, db)
}
