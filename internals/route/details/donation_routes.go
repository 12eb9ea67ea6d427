package details

import (
	donationController "medaid_backend/internals/features/donations/donations/controller"
	donationRoutes "medaid_backend/internals/features/donations/donations/routes"

	"github.com/gofiber/fiber/v2"
)

func DonationUserRoutes(user fiber.Router, s *Services) {
	donationRoutes.DonationUserRoutes(user, donationController.NewDonationController(s.Donations))
}

func DonationAdminRoutes(admin fiber.Router, s *Services) {
	donationRoutes.DonationAdminRoutes(admin, donationController.NewDonationController(s.Donations))
}
