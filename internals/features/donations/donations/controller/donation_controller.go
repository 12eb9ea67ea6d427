package controller

import (
	"medaid_backend/internals/features/donations/donations/dto"
	"medaid_backend/internals/features/donations/donations/repository"
	"medaid_backend/internals/features/donations/donations/service"
	helper "medaid_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type DonationController struct {
	Service *service.DonationService
}

func NewDonationController(svc *service.DonationService) *DonationController {
	return &DonationController{Service: svc}
}

var donationSortColumns = map[string]string{
	"created_at": "created_at",
	"amount":     "donation_amount",
}

/* ====================== DONOR ====================== */

// 🟢 POST /api/u/donations
func (ctrl *DonationController) CreateDonation(c *fiber.Ctx) error {
	donorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	receipt, err := ctrl.Service.RecordDonation(c.Context(), donorID, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Donation recorded", receipt)
}

// 🟢 GET /api/u/donations
func (ctrl *DonationController) ListMyDonations(c *fiber.Ctx) error {
	donorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctrl.Service.ListMine(c.Context(), donorID, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Donations fetched", dto.ToDonationResponseList(rows), helper.BuildPagination(total, p, len(rows)))
}

/* ====================== OWNER ====================== */

// 🟢 GET /api/u/cases/mine/donations
func (ctrl *DonationController) ListMyCaseDonations(c *fiber.Ctx) error {
	caseID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctrl.Service.ListForCase(c.Context(), caseID, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Donations fetched", dto.ToDonationResponseList(rows), helper.BuildPagination(total, p, len(rows)))
}

/* ====================== ADMIN ====================== */

// 🟢 GET /api/a/donations?case_id=&donor_id=
func (ctrl *DonationController) ListDonations(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	caseID, err := helper.ParseUUIDQuery(c, "case_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	donorID, err := helper.ParseUUIDQuery(c, "donor_id")
	if err != nil {
		return helper.FromError(c, err)
	}

	rows, total, err := ctrl.Service.ListAdmin(c.Context(), repository.ListFilter{
		CaseID:  caseID,
		DonorID: donorID,
		Offset:  p.Offset(),
		Limit:   p.Limit(),
		Order:   p.SafeOrder(donationSortColumns, "created_at"),
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Donations fetched", dto.ToDonationResponseList(rows), helper.BuildPagination(total, p, len(rows)))
}

// 🟢 GET /api/a/donations/cases/:id
func (ctrl *DonationController) ListCaseDonations(c *fiber.Ctx) error {
	caseID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	rows, total, err := ctrl.Service.ListForCase(c.Context(), caseID, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Donations fetched", dto.ToDonationResponseList(rows), helper.BuildPagination(total, p, len(rows)))
}
