package service

import (
	"context"
	"testing"

	"medaid_backend/internals/features/users/user/model"
	"medaid_backend/internals/features/users/user/repository"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	admins map[uuid.UUID]*model.AdminModel
}

func (m *memStore) ListDonors(context.Context, repository.ListFilter) ([]model.DonorModel, int64, error) {
	return nil, 0, nil
}

func (m *memStore) ListVolunteers(context.Context, repository.ListFilter) ([]model.VolunteerModel, int64, error) {
	return nil, 0, nil
}

func (m *memStore) ListAdmins(context.Context, repository.ListFilter) ([]model.AdminModel, int64, error) {
	out := make([]model.AdminModel, 0, len(m.admins))
	for _, a := range m.admins {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) SetDonorActive(_ context.Context, id uuid.UUID, _ bool) (*model.DonorModel, error) {
	return nil, apperr.NotFound("donor not found")
}

func (m *memStore) SetVolunteerActive(_ context.Context, id uuid.UUID, active bool) (*model.VolunteerModel, error) {
	return &model.VolunteerModel{ID: id, IsActive: active}, nil
}

func (m *memStore) SetAdminActive(_ context.Context, id uuid.UUID, active bool) (*model.AdminModel, error) {
	a, ok := m.admins[id]
	if !ok {
		return nil, apperr.NotFound("admin not found")
	}
	a.IsActive = active
	return a, nil
}

func TestSetAdminActive(t *testing.T) {
	root := &model.AdminModel{ID: uuid.New(), Role: model.AdminRoleSuperAdmin, IsActive: true}
	other := &model.AdminModel{ID: uuid.New(), Role: model.AdminRoleAdmin, IsActive: true}
	svc := NewUserService(&memStore{admins: map[uuid.UUID]*model.AdminModel{root.ID: root, other.ID: other}})
	ctx := context.Background()

	_, err := svc.SetAdminActive(ctx, root.ID, root.ID, false)
	assert.True(t, apperr.Is(err, apperr.KindPrecondition))
	assert.True(t, root.IsActive)

	a, err := svc.SetAdminActive(ctx, root.ID, other.ID, false)
	require.NoError(t, err)
	assert.False(t, a.IsActive)
	assert.False(t, a.CanReview())

	_, err = svc.SetAdminActive(ctx, root.ID, uuid.New(), true)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSetActive_PassesThrough(t *testing.T) {
	svc := NewUserService(&memStore{})
	ctx := context.Background()

	v, err := svc.SetVolunteerActive(ctx, uuid.New(), false)
	require.NoError(t, err)
	assert.False(t, v.IsActive)

	_, err = svc.SetDonorActive(ctx, uuid.New(), false)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
