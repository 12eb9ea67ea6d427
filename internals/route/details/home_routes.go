package details

import (
	dashboardController "medaid_backend/internals/features/home/dashboard/controller"
	dashboardRoute "medaid_backend/internals/features/home/dashboard/route"
	notificationRoute "medaid_backend/internals/features/home/notifications/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// 👤 /api/u/notifications
func HomeUserRoutes(user fiber.Router, db *gorm.DB) {
	notificationRoute.NotificationUserRoutes(user, db)
}

// 🔐 /api/a/dashboard
func HomeAdminRoutes(admin fiber.Router, s *Services) {
	dashboardRoute.DashboardAdminRoutes(admin, dashboardController.NewDashboardController(s.Dashboard))
}
