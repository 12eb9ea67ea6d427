package route

import (
	"medaid_backend/internals/features/home/dashboard/controller"

	"github.com/gofiber/fiber/v2"
)

func DashboardAdminRoutes(admin fiber.Router, ctrl *controller.DashboardController) {
	admin.Get("/dashboard/stats", ctrl.GetStats)
}
