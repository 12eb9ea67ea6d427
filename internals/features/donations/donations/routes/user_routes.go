package routes

import (
	"medaid_backend/internals/constants"
	"medaid_backend/internals/features/donations/donations/controller"
	authMiddleware "medaid_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

func DonationUserRoutes(user fiber.Router, ctrl *controller.DonationController) {
	donations := user.Group("/donations", authMiddleware.OnlyRoles(constants.RoleErrorDonor("donations"), constants.DonorOnly...))
	donations.Post("/", ctrl.CreateDonation)
	donations.Get("/", ctrl.ListMyDonations)

	user.Get("/cases/mine/donations",
		authMiddleware.OnlyRoles("Only case owners can view this case", constants.NeedyOnly...),
		ctrl.ListMyCaseDonations)
}
