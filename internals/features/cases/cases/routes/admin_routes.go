package routes

import (
	"medaid_backend/internals/features/cases/cases/controller"

	"github.com/gofiber/fiber/v2"
)

func CaseAdminRoutes(admin fiber.Router, ctrl *controller.CaseController) {
	cases := admin.Group("/cases")
	cases.Get("/", ctrl.ListCases)
	cases.Post("/reclassify", ctrl.Reclassify)
	cases.Get("/:id", ctrl.GetCase)
	cases.Patch("/:id/assign-volunteer", ctrl.AssignVolunteer)
	cases.Patch("/:id/review", ctrl.AdminReview)
	cases.Patch("/:id/deactivate", ctrl.DeactivateCase)
}
