package controller

import (
	"medaid_backend/internals/features/users/auth/dto"
	"medaid_backend/internals/features/users/auth/service"
	helper "medaid_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// 🟢 POST /api/auth/register/donor
func (ac *AuthController) RegisterDonor(c *fiber.Ctx) error {
	var req dto.RegisterDonorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := ac.Service.RegisterDonor(c.Context(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Registration successful", out)
}

// 🟢 POST /api/auth/register/volunteer
func (ac *AuthController) RegisterVolunteer(c *fiber.Ctx) error {
	var req dto.RegisterVolunteerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := ac.Service.RegisterVolunteer(c.Context(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Registration successful", out)
}

// 🟢 POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	out, err := ac.Service.Login(c.Context(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", out)
}

// 🟢 GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := ac.Service.Me(c.Context(), userID, helper.GetUserRole(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Profile fetched", out)
}

// 🟢 POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := ac.Service.ChangePassword(c.Context(), userID, helper.GetUserRole(c), req); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

// 🟢 POST /api/a/admins (superadmin)
func (ac *AuthController) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := ac.Service.CreateAdmin(c.Context(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Admin created", out)
}
