package routes

import (
	"medaid_backend/internals/constants"
	authController "medaid_backend/internals/features/users/auth/controller"
	userController "medaid_backend/internals/features/users/user/controller"
	authMiddleware "medaid_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

func UserAdminRoutes(admin fiber.Router, userCtrl *userController.UserController, authCtrl *authController.AuthController) {
	donors := admin.Group("/donors")
	donors.Get("/", userCtrl.ListDonors)
	donors.Patch("/:id/active", userCtrl.SetDonorActive)

	volunteers := admin.Group("/volunteers")
	volunteers.Get("/", userCtrl.ListVolunteers)
	volunteers.Patch("/:id/active", userCtrl.SetVolunteerActive)

	// 🔐 superadmin only
	admins := admin.Group("/admins",
		authMiddleware.OnlyRoles(constants.RoleErrorSuperAdmin("admin management"), constants.SuperAdminOnly...),
	)
	admins.Get("/", userCtrl.ListAdmins)
	admins.Post("/", authCtrl.CreateAdmin)
	admins.Patch("/:id/active", userCtrl.SetAdminActive)
}
