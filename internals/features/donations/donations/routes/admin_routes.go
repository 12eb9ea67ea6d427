package routes

import (
	"medaid_backend/internals/features/donations/donations/controller"

	"github.com/gofiber/fiber/v2"
)

func DonationAdminRoutes(admin fiber.Router, ctrl *controller.DonationController) {
	donations := admin.Group("/donations")
	donations.Get("/", ctrl.ListDonations)
	donations.Get("/cases/:id", ctrl.ListCaseDonations)
}
