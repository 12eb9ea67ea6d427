package service

import (
	"context"
	"testing"
	"time"

	caseModel "medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/features/users/auth/dto"
	authHelper "medaid_backend/internals/features/users/auth/helper"
	userModel "medaid_backend/internals/features/users/user/model"
	"medaid_backend/internals/helpers/apperr"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type memAccounts struct {
	donors     map[uuid.UUID]*userModel.DonorModel
	volunteers map[uuid.UUID]*userModel.VolunteerModel
	admins     map[uuid.UUID]*userModel.AdminModel
}

func newMemAccounts() *memAccounts {
	return &memAccounts{
		donors:     map[uuid.UUID]*userModel.DonorModel{},
		volunteers: map[uuid.UUID]*userModel.VolunteerModel{},
		admins:     map[uuid.UUID]*userModel.AdminModel{},
	}
}

func (m *memAccounts) CreateDonor(_ context.Context, d *userModel.DonorModel) error {
	d.ID = uuid.New()
	m.donors[d.ID] = d
	return nil
}

func (m *memAccounts) CreateVolunteer(_ context.Context, v *userModel.VolunteerModel) error {
	for _, existing := range m.volunteers {
		if existing.CNIC == v.CNIC {
			return apperr.Precondition("duplicate record (volunteers_cnic_key)")
		}
	}
	v.ID = uuid.New()
	m.volunteers[v.ID] = v
	return nil
}

func (m *memAccounts) CreateAdmin(_ context.Context, a *userModel.AdminModel) error {
	a.ID = uuid.New()
	m.admins[a.ID] = a
	return nil
}

func (m *memAccounts) FindDonorByID(_ context.Context, id uuid.UUID) (*userModel.DonorModel, error) {
	if d, ok := m.donors[id]; ok {
		return d, nil
	}
	return nil, apperr.NotFound("donor not found")
}

func (m *memAccounts) FindVolunteerByID(_ context.Context, id uuid.UUID) (*userModel.VolunteerModel, error) {
	if v, ok := m.volunteers[id]; ok {
		return v, nil
	}
	return nil, apperr.NotFound("volunteer not found")
}

func (m *memAccounts) FindAdminByID(_ context.Context, id uuid.UUID) (*userModel.AdminModel, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, apperr.NotFound("admin not found")
}

func (m *memAccounts) FindDonorByEmail(_ context.Context, email string) (*userModel.DonorModel, error) {
	for _, d := range m.donors {
		if d.Email == userModel.NormalizeEmail(email) {
			return d, nil
		}
	}
	return nil, apperr.NotFound("donor not found")
}

func (m *memAccounts) FindVolunteerByEmail(_ context.Context, email string) (*userModel.VolunteerModel, error) {
	for _, v := range m.volunteers {
		if v.Email == userModel.NormalizeEmail(email) {
			return v, nil
		}
	}
	return nil, apperr.NotFound("volunteer not found")
}

func (m *memAccounts) FindAdminByEmail(_ context.Context, email string) (*userModel.AdminModel, error) {
	for _, a := range m.admins {
		if a.Email == userModel.NormalizeEmail(email) {
			return a, nil
		}
	}
	return nil, apperr.NotFound("admin not found")
}

func (m *memAccounts) UpdatePassword(_ context.Context, kind string, id uuid.UUID, hash string) error {
	switch kind {
	case "donor":
		m.donors[id].Password = hash
	case "volunteer":
		m.volunteers[id].Password = hash
	case "admin":
		m.admins[id].Password = hash
	}
	return nil
}

type memCases struct {
	cases map[uuid.UUID]*caseModel.CaseModel
}

func (m *memCases) FindByID(_ context.Context, id uuid.UUID) (*caseModel.CaseModel, error) {
	if c, ok := m.cases[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("case not found")
}

func (m *memCases) FindByEmail(_ context.Context, email string) (*caseModel.CaseModel, error) {
	for _, c := range m.cases {
		if c.CaseEmail == caseModel.NormalizeEmail(email) {
			return c, nil
		}
	}
	return nil, apperr.NotFound("case not found")
}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*AuthService, *memAccounts, *memCases) {
	t.Helper()
	accounts := newMemAccounts()
	cases := &memCases{cases: map[uuid.UUID]*caseModel.CaseModel{}}
	svc := NewAuthService(accounts, cases, testSecret, time.Hour)
	svc.now = func() time.Time { return testNow }
	return svc, accounts, cases
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestRegisterDonorAndLogin(t *testing.T) {
	svc, accounts, _ := newTestService(t)
	ctx := context.Background()

	acc, err := svc.RegisterDonor(ctx, dto.RegisterDonorRequest{
		Name: " Ayesha ", Email: "Ayesha@Example.com", Password: "secret1", City: "Karachi",
	})
	require.NoError(t, err)
	assert.Equal(t, "ayesha@example.com", acc.Email)
	assert.Equal(t, "Ayesha", acc.Name)
	assert.NotEqual(t, "secret1", accounts.donors[acc.ID].Password)

	out, err := svc.Login(ctx, dto.LoginRequest{Email: "AYESHA@example.com", Password: "secret1", UserType: "Donor"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, testNow.Add(time.Hour), out.ExpiresAt)

	claims := parseClaims(t, out.AccessToken)
	assert.Equal(t, acc.ID.String(), claims["id"])
	assert.Equal(t, "donor", claims["role"])
	assert.EqualValues(t, testNow.Add(time.Hour).Unix(), claims["exp"])
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterDonor(ctx, dto.RegisterDonorRequest{Name: "A B", Email: "not-an-email", Password: "secret1"})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "email")

	_, err = svc.RegisterDonor(ctx, dto.RegisterDonorRequest{Name: "A B", Email: "a@b.co", Password: "123"})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "password")

	_, err = svc.RegisterVolunteer(ctx, dto.RegisterVolunteerRequest{Name: "Vol", Email: "v@b.co", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRegister_Duplicates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterDonor(ctx, dto.RegisterDonorRequest{Name: "Ali", Email: "ali@x.pk", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.RegisterDonor(ctx, dto.RegisterDonorRequest{Name: "Ali 2", Email: " ALI@x.pk", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindPrecondition))

	vol := dto.RegisterVolunteerRequest{Name: "Vol", Email: "v1@x.pk", Password: "secret1", Phone: "0300", CNIC: "42101-1", District: "South"}
	_, err = svc.RegisterVolunteer(ctx, vol)
	require.NoError(t, err)
	vol.Email = "v2@x.pk"
	_, err = svc.RegisterVolunteer(ctx, vol)
	assert.True(t, apperr.Is(err, apperr.KindPrecondition))
}

func TestLogin_Failures(t *testing.T) {
	svc, accounts, _ := newTestService(t)
	ctx := context.Background()

	acc, err := svc.RegisterVolunteer(ctx, dto.RegisterVolunteerRequest{
		Name: "Vol", Email: "vol@x.pk", Password: "secret1", Phone: "0300", CNIC: "42101-2", District: "East",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "vol@x.pk", Password: "wrong", UserType: "volunteer"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "vol@x.pk", Password: "secret1", UserType: "donor"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "vol@x.pk", Password: "secret1", UserType: "ghost"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	accounts.volunteers[acc.ID].IsActive = false
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "vol@x.pk", Password: "secret1", UserType: "volunteer"})
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
}

func TestLogin_CaseOwner(t *testing.T) {
	svc, _, cases := newTestService(t)
	hash, err := authHelper.HashPassword("secret1")
	require.NoError(t, err)
	c := &caseModel.CaseModel{
		CaseID:       uuid.New(),
		CaseNumber:   "CASE-2025-00007",
		CaseName:     "Patient",
		CaseEmail:    "patient@x.pk",
		CasePassword: hash,
		CaseIsActive: true,
	}
	cases.cases[c.CaseID] = c

	out, err := svc.Login(context.Background(), dto.LoginRequest{Email: "patient@x.pk", Password: "secret1", UserType: "needy"})
	require.NoError(t, err)
	assert.Equal(t, "CASE-2025-00007", out.User.CaseNumber)
	claims := parseClaims(t, out.AccessToken)
	assert.Equal(t, c.CaseID.String(), claims["id"])
	assert.Equal(t, "needy", claims["role"])

	me, err := svc.Me(context.Background(), c.CaseID, "needy")
	require.NoError(t, err)
	assert.Equal(t, "Patient", me.Name)
}

func TestSeedSuperAdmin(t *testing.T) {
	svc, accounts, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedSuperAdmin(ctx, "", "root@medaid.pk", "rootpass"))
	require.NoError(t, svc.SeedSuperAdmin(ctx, "", "ROOT@medaid.pk", "other"))
	require.Len(t, accounts.admins, 1)

	out, err := svc.Login(ctx, dto.LoginRequest{Email: "root@medaid.pk", Password: "rootpass", UserType: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "superadmin", parseClaims(t, out.AccessToken)["role"])

	require.NoError(t, svc.SeedSuperAdmin(ctx, "", "", ""))
	assert.Len(t, accounts.admins, 1)
}

func TestCreateAdmin_DefaultsRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	acc, err := svc.CreateAdmin(context.Background(), dto.CreateAdminRequest{Name: "Admin", Email: "a@medaid.pk", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "admin", acc.Role)

	_, err = svc.CreateAdmin(context.Background(), dto.CreateAdminRequest{Name: "Admin", Email: "b@medaid.pk", Password: "secret1", Role: "owner"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	acc, err := svc.RegisterDonor(ctx, dto.RegisterDonorRequest{Name: "Donor", Email: "d@x.pk", Password: "secret1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, acc.ID, "donor", dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret2"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, svc.ChangePassword(ctx, acc.ID, "donor", dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "d@x.pk", Password: "secret2", UserType: "donor"})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, uuid.New(), "needy", dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "secret2"})
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
}
