package routes

import (
	"medaid_backend/internals/constants"
	"medaid_backend/internals/features/cases/cases/controller"
	authMiddleware "medaid_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// CaseOwnerRoutes is for the needy person who submitted the case.
func CaseOwnerRoutes(user fiber.Router, ctrl *controller.CaseController) {
	cases := user.Group("/cases", authMiddleware.OnlyRoles("Only case owners can view this case", constants.NeedyOnly...))
	cases.Get("/mine", ctrl.GetMyCase)
}

func CaseVolunteerRoutes(volunteer fiber.Router, ctrl *controller.CaseController) {
	cases := volunteer.Group("/cases")
	cases.Get("/", ctrl.ListAssignedCases)
	cases.Get("/:id", ctrl.GetAssignedCase)
	cases.Patch("/:id/review", ctrl.VolunteerReview)
}
