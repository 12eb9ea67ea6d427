package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type RegisterDonorRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	City     string `json:"city" validate:"omitempty,max=50"`
}

func (r *RegisterDonorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.City = strings.TrimSpace(r.City)
}

type RegisterVolunteerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,max=20"`
	CNIC     string `json:"cnic" validate:"required,max=20"`
	District string `json:"district" validate:"required,max=50"`
}

func (r *RegisterVolunteerRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.CNIC = strings.TrimSpace(r.CNIC)
	r.District = strings.TrimSpace(r.District)
}

// UserType values accepted by login.
const (
	UserTypeDonor     = "donor"
	UserTypeVolunteer = "volunteer"
	UserTypeAdmin     = "admin"
	UserTypeNeedy     = "needy"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"required,oneof=donor volunteer admin needy"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.UserType = strings.ToLower(strings.TrimSpace(r.UserType))
}

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

func (r *CreateAdminRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = "admin"
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type AccountResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	Phone      string    `json:"phone,omitempty"`
	City       string    `json:"city,omitempty"`
	District   string    `json:"district,omitempty"`
	CaseNumber string    `json:"case_number,omitempty"`

	TotalDonations     *int64 `json:"total_donations,omitempty"`
	TotalAmountDonated *int64 `json:"total_amount_donated,omitempty"`
	CasesHelped        *int64 `json:"cases_helped,omitempty"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	User        AccountResponse `json:"user"`
}
