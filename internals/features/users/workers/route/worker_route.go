package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/constants"
	"bhashaflow_backend/internals/features/users/workers/controller"
	authMiddleware "bhashaflow_backend/internals/middlewares/auth"
)

// WorkerAdminRoutes dipasang di group /api/a
func WorkerAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewWorkerController(db)

	workers := admin.Group("/workers")
	workers.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorCreator("pembuatan worker"), constants.WorkerCreatorRoles...),
		ctrl.CreateWorker,
	)
	workers.Get("/", ctrl.ListWorkers)
	workers.Get("/:id", ctrl.GetWorker)
}
