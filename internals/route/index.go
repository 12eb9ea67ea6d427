package routes

import (
	"log"
	"time"

	"medaid_backend/internals/constants"
	"medaid_backend/internals/middlewares"
	authMiddleware "medaid_backend/internals/middlewares/auth"
	routeDetails "medaid_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, s *routeDetails.Services, jwtSecret string) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, s, jwtSecret)

	// ===================== GROUPS =====================
	api := app.Group("/api", middlewares.GlobalRateLimiter())

	// PUBLIC → no token
	log.Println("[INFO] Setting up PUBLIC group...")
	public := api.Group("/public")

	// PRIVATE → any signed-in account
	log.Println("[INFO] Setting up PRIVATE group...")
	user := api.Group("/u", authMiddleware.AuthMiddleware(jwtSecret))

	// VOLUNTEER
	log.Println("[INFO] Setting up VOLUNTEER group...")
	volunteer := api.Group("/v",
		authMiddleware.AuthMiddleware(jwtSecret),
		authMiddleware.OnlyRoles(constants.RoleErrorVolunteer("this feature"), constants.VolunteerOnly...),
	)

	// ADMIN (admin + superadmin)
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(jwtSecret),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this feature"), constants.AdminAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Case routes...")
	routeDetails.CasePublicRoutes(public, s)
	routeDetails.CaseUserRoutes(user, s)
	routeDetails.CaseVolunteerRoutes(volunteer, s)
	routeDetails.CaseAdminRoutes(admin, s)

	log.Println("[INFO] Mounting Donation routes...")
	routeDetails.DonationUserRoutes(user, s)
	routeDetails.DonationAdminRoutes(admin, s)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, s)

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomeUserRoutes(user, db)
	routeDetails.HomeAdminRoutes(admin, s)
}
