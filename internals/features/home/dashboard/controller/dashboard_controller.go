package controller

import (
	"medaid_backend/internals/features/home/dashboard/service"
	helper "medaid_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Service: svc}
}

// 🟢 GET /api/a/dashboard/stats
func (ctrl *DashboardController) GetStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.Stats(c.Context())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Dashboard stats fetched", stats)
}
