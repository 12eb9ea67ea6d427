package details

import (
	authController "medaid_backend/internals/features/users/auth/controller"
	userController "medaid_backend/internals/features/users/user/controller"
	userRoutes "medaid_backend/internals/features/users/user/routes"

	"github.com/gofiber/fiber/v2"
)

// 🔐 /api/a/donors, /api/a/volunteers, /api/a/admins
func UserAdminRoutes(admin fiber.Router, s *Services) {
	userRoutes.UserAdminRoutes(admin,
		userController.NewUserController(s.Users),
		authController.NewAuthController(s.Auth),
	)
}
