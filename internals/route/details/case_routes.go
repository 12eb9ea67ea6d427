package details

import (
	caseController "medaid_backend/internals/features/cases/cases/controller"
	caseRoutes "medaid_backend/internals/features/cases/cases/routes"

	"github.com/gofiber/fiber/v2"
)

// 🔓 /api/public/cases
func CasePublicRoutes(public fiber.Router, s *Services) {
	caseRoutes.CasePublicRoutes(public, caseController.NewCaseController(s.Cases))
}

// 👤 /api/u/cases (case owner)
func CaseUserRoutes(user fiber.Router, s *Services) {
	caseRoutes.CaseOwnerRoutes(user, caseController.NewCaseController(s.Cases))
}

// 🧑‍⚕️ /api/v/cases
func CaseVolunteerRoutes(volunteer fiber.Router, s *Services) {
	caseRoutes.CaseVolunteerRoutes(volunteer, caseController.NewCaseController(s.Cases))
}

// 🔐 /api/a/cases
func CaseAdminRoutes(admin fiber.Router, s *Services) {
	caseRoutes.CaseAdminRoutes(admin, caseController.NewCaseController(s.Cases))
}
