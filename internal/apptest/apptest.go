// Package apptest assembles the full application router for tests, with
// cross-feature wiring applied exactly once per test binary.
package apptest

import (
	"sync"

	"etude-backend/internal/features/attachments"
	"etude-backend/internal/features/audit_logs"
	"etude-backend/internal/features/notifications"
	"etude-backend/internal/features/pages"
	"etude-backend/internal/features/shares"
	"etude-backend/internal/features/system"
	users_controllers "etude-backend/internal/features/users/controllers"
	users_middleware "etude-backend/internal/features/users/middleware"
	users_services "etude-backend/internal/features/users/services"
	workspaces_controllers "etude-backend/internal/features/workspaces/controllers"
	workspaces_services "etude-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
)

var (
	once   sync.Once
	router *gin.Engine
)

// GetRouter wires all feature dependencies and returns a router with the
// same route layout the server uses.
func GetRouter() *gin.Engine {
	once.Do(func() {
		audit_logs.SetupDependencies()
		shares.SetupDependencies()
		workspaces_services.SetupDependencies()
		pages.SetupDependencies()

		gin.SetMode(gin.TestMode)
		router = gin.New()

		v1 := router.Group("/api/v1")

		userController := users_controllers.GetUserController()
		userController.RegisterRoutes(v1)
		shares.GetShareController().RegisterPublicRoutes(v1)
		system.GetSystemController().RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

		userController.RegisterProtectedRoutes(protected)
		workspaces_controllers.GetWorkspaceController().RegisterRoutes(protected)
		pages.GetPageController().RegisterRoutes(protected)
		shares.GetShareController().RegisterRoutes(protected)
		notifications.GetNotificationController().RegisterRoutes(protected)
		attachments.GetAttachmentController().RegisterRoutes(protected)
		audit_logs.GetAuditLogController().RegisterRoutes(protected)
		system.GetSystemController().RegisterRoutes(protected)
	})

	return router
}
