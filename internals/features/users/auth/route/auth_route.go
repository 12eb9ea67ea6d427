package route

import (
	"medaid_backend/internals/features/users/auth/controller"
	"medaid_backend/internals/middlewares"
	authMiddleware "medaid_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes mounts /api/auth. Registration and login are public; the rest
// need a bearer token.
func AuthRoutes(app *fiber.App, ctrl *controller.AuthController, jwtSecret string) {
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	baseAuth.Post("/register/donor", middlewares.RegisterRateLimiter(), ctrl.RegisterDonor)
	baseAuth.Post("/register/volunteer", middlewares.RegisterRateLimiter(), ctrl.RegisterVolunteer)

	requireAuth := authMiddleware.AuthMiddleware(jwtSecret)
	baseAuth.Get("/me", requireAuth, ctrl.Me)
	baseAuth.Post("/change-password", requireAuth, ctrl.ChangePassword)
}
