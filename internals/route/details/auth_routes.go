package details

import (
	authController "medaid_backend/internals/features/users/auth/controller"
	authRoute "medaid_backend/internals/features/users/auth/route"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, s *Services, jwtSecret string) {
	authRoute.AuthRoutes(app, authController.NewAuthController(s.Auth), jwtSecret)
}
