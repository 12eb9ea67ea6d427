package service

import (
	"context"
	"log"

	"medaid_backend/internals/features/users/user/model"
	"medaid_backend/internals/features/users/user/repository"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
)

type Store interface {
	ListDonors(ctx context.Context, f repository.ListFilter) ([]model.DonorModel, int64, error)
	ListVolunteers(ctx context.Context, f repository.ListFilter) ([]model.VolunteerModel, int64, error)
	ListAdmins(ctx context.Context, f repository.ListFilter) ([]model.AdminModel, int64, error)
	SetDonorActive(ctx context.Context, id uuid.UUID, active bool) (*model.DonorModel, error)
	SetVolunteerActive(ctx context.Context, id uuid.UUID, active bool) (*model.VolunteerModel, error)
	SetAdminActive(ctx context.Context, id uuid.UUID, active bool) (*model.AdminModel, error)
}

// UserService backs the admin account-management screens.
type UserService struct {
	store Store
}

func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) ListDonors(ctx context.Context, f repository.ListFilter) ([]model.DonorModel, int64, error) {
	return s.store.ListDonors(ctx, f)
}

func (s *UserService) ListVolunteers(ctx context.Context, f repository.ListFilter) ([]model.VolunteerModel, int64, error) {
	return s.store.ListVolunteers(ctx, f)
}

func (s *UserService) ListAdmins(ctx context.Context, f repository.ListFilter) ([]model.AdminModel, int64, error) {
	return s.store.ListAdmins(ctx, f)
}

func (s *UserService) SetDonorActive(ctx context.Context, id uuid.UUID, active bool) (*model.DonorModel, error) {
	d, err := s.store.SetDonorActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] donor %s is_active=%v", id, active)
	return d, nil
}

func (s *UserService) SetVolunteerActive(ctx context.Context, id uuid.UUID, active bool) (*model.VolunteerModel, error) {
	v, err := s.store.SetVolunteerActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] volunteer %s is_active=%v", id, active)
	return v, nil
}

// SetAdminActive refuses to let the acting superadmin lock themselves out.
func (s *UserService) SetAdminActive(ctx context.Context, actingID, id uuid.UUID, active bool) (*model.AdminModel, error) {
	if actingID == id && !active {
		return nil, apperr.Precondition("you cannot deactivate your own account")
	}
	a, err := s.store.SetAdminActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] admin %s is_active=%v (by %s)", id, active, actingID)
	return a, nil
}
