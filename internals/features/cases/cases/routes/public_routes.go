package routes

import (
	"medaid_backend/internals/features/cases/cases/controller"

	"github.com/gofiber/fiber/v2"
)

func CasePublicRoutes(public fiber.Router, ctrl *controller.CaseController) {
	cases := public.Group("/cases")
	cases.Post("/", ctrl.SubmitCase)
	cases.Get("/", ctrl.ListPublicCases)
	cases.Get("/:id", ctrl.GetPublicCase)
}
