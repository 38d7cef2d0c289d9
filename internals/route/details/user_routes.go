package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	workerRoute "bhashaflow_backend/internals/features/users/workers/route"
)

// WorkerRoutes: manajemen akun worker (hanya /api/a)
func WorkerRoutes(admin fiber.Router, db *gorm.DB) {
	workerRoute.WorkerAdminRoutes(admin, db)
}
