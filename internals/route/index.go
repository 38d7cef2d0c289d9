// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/configs"
	"bhashaflow_backend/internals/constants"
	authMiddleware "bhashaflow_backend/internals/middlewares/auth"
	routeDetails "bhashaflow_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	startTime = time.Now()

	logrus.Info("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db, cfg)

	// ===================== AUTH =====================
	// wajib sebelum group /api/a: prefix Use "/api/a" juga cocok dengan "/api/auth"
	logrus.Info("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, cfg.JWT)

	// ===================== GROUPS =====================

	// 🔐 ADMIN: admin, assigner, uploader
	logrus.Info("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(cfg.JWT.Secret),
		authMiddleware.OnlyRoles(constants.RoleErrorManager("admin"), constants.ManagerRoles...),
	)

	// 👤 USER: semua worker yang login
	logrus.Info("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(cfg.JWT.Secret),
	)

	// 🧐 REVIEWER: admin, reviewer, editor
	logrus.Info("[INFO] Setting up REVIEWER group (Auth + RoleCheck)...")
	reviewer := app.Group("/api/r",
		authMiddleware.AuthJWT(cfg.JWT.Secret),
		authMiddleware.OnlyRoles(constants.RoleErrorReviewer("review"), constants.ReviewerRoles...),
	)

	// ===================== MOUNT ROUTES =====================
	logrus.Info("[INFO] Mounting Worker routes...")
	routeDetails.WorkerRoutes(admin, db)

	logrus.Info("[INFO] Mounting Workflow routes...")
	routeDetails.WorkflowAdminRoutes(admin, db)
	routeDetails.WorkflowUserRoutes(user, db)
	routeDetails.WorkflowReviewerRoutes(reviewer, db)
}
