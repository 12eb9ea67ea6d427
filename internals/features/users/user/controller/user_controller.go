package controller

import (
	authDto "medaid_backend/internals/features/users/auth/dto"
	"medaid_backend/internals/features/users/user/dto"
	"medaid_backend/internals/features/users/user/model"
	"medaid_backend/internals/features/users/user/repository"
	"medaid_backend/internals/features/users/user/service"
	helper "medaid_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

var userSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"email":      "email",
}

func listFilter(c *fiber.Ctx, p helper.Params) repository.ListFilter {
	f := repository.ListFilter{
		Search:   c.Query("search"),
		District: c.Query("district"),
		Offset:   p.Offset(),
		Limit:    p.Limit(),
		Order:    p.SafeOrder(userSortColumns, "created_at"),
	}
	switch c.Query("is_active") {
	case "true", "1":
		v := true
		f.IsActive = &v
	case "false", "0":
		v := false
		f.IsActive = &v
	}
	return f
}

func parseActive(c *fiber.Ctx) (uuid.UUID, bool, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, false, err
	}
	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return uuid.Nil, false, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return uuid.Nil, false, err
	}
	return id, *req.IsActive, nil
}

/* ====================== DONORS ====================== */

// 🟢 GET /api/a/donors
func (uc *UserController) ListDonors(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := uc.Service.ListDonors(c.Context(), listFilter(c, p))
	if err != nil {
		return helper.FromError(c, err)
	}
	out := make([]authDto.AccountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, authDto.FromDonor(&rows[i]))
	}
	return helper.JsonList(c, "Donors fetched", out, helper.BuildPagination(total, p, len(rows)))
}

// 🟢 PATCH /api/a/donors/:id/active
func (uc *UserController) SetDonorActive(c *fiber.Ctx) error {
	id, active, err := parseActive(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	d, err := uc.Service.SetDonorActive(c.Context(), id, active)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Donor updated", authDto.FromDonor(d))
}

/* ====================== VOLUNTEERS ====================== */

// 🟢 GET /api/a/volunteers?district=&is_active=
func (uc *UserController) ListVolunteers(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := uc.Service.ListVolunteers(c.Context(), listFilter(c, p))
	if err != nil {
		return helper.FromError(c, err)
	}
	out := make([]authDto.AccountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, authDto.FromVolunteer(&rows[i]))
	}
	return helper.JsonList(c, "Volunteers fetched", out, helper.BuildPagination(total, p, len(rows)))
}

// 🟢 PATCH /api/a/volunteers/:id/active
func (uc *UserController) SetVolunteerActive(c *fiber.Ctx) error {
	id, active, err := parseActive(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	v, err := uc.Service.SetVolunteerActive(c.Context(), id, active)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Volunteer updated", authDto.FromVolunteer(v))
}

/* ====================== ADMINS (superadmin) ====================== */

// 🟢 GET /api/a/admins
func (uc *UserController) ListAdmins(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := uc.Service.ListAdmins(c.Context(), listFilter(c, p))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Admins fetched", adminList(rows), helper.BuildPagination(total, p, len(rows)))
}

// 🟢 PATCH /api/a/admins/:id/active
func (uc *UserController) SetAdminActive(c *fiber.Ctx) error {
	actingID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, active, err := parseActive(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	a, err := uc.Service.SetAdminActive(c.Context(), actingID, id, active)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Admin updated", authDto.FromAdmin(a))
}

func adminList(rows []model.AdminModel) []authDto.AccountResponse {
	out := make([]authDto.AccountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, authDto.FromAdmin(&rows[i]))
	}
	return out
}
