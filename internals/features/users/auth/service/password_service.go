package service

import (
	"context"
	"log"

	"medaid_backend/internals/constants"
	"medaid_backend/internals/features/users/auth/dto"
	authHelper "medaid_backend/internals/features/users/auth/helper"
	helper "medaid_backend/internals/helpers"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
)

// ChangePassword checks the current password before storing the new hash.
// Case owners cannot change the submission password here.
func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, role string, req dto.ChangePasswordRequest) error {
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	var (
		kind    string
		current string
	)
	switch {
	case role == constants.RoleDonor:
		d, err := s.accounts.FindDonorByID(ctx, id)
		if err != nil {
			return err
		}
		kind, current = dto.UserTypeDonor, d.Password
	case role == constants.RoleVolunteer:
		v, err := s.accounts.FindVolunteerByID(ctx, id)
		if err != nil {
			return err
		}
		kind, current = dto.UserTypeVolunteer, v.Password
	case constants.IsAdminRole(role):
		a, err := s.accounts.FindAdminByID(ctx, id)
		if err != nil {
			return err
		}
		kind, current = dto.UserTypeAdmin, a.Password
	default:
		return apperr.Authorization("password change is not available for this account")
	}

	if !authHelper.CheckPasswordHash(current, req.CurrentPassword) {
		return apperr.Validation("current password is incorrect")
	}
	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(ctx, kind, id, hash); err != nil {
		return err
	}
	log.Printf("[INFO] password changed: %s %s", role, id)
	return nil
}
