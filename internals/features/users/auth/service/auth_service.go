package service

import (
	"context"
	"log"
	"strings"
	"time"

	"medaid_backend/internals/constants"
	caseModel "medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/features/users/auth/dto"
	authHelper "medaid_backend/internals/features/users/auth/helper"
	userModel "medaid_backend/internals/features/users/user/model"
	helper "medaid_backend/internals/helpers"
	"medaid_backend/internals/helpers/apperr"
	"medaid_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
)

// Accounts is the donor/volunteer/admin store.
type Accounts interface {
	CreateDonor(ctx context.Context, d *userModel.DonorModel) error
	CreateVolunteer(ctx context.Context, v *userModel.VolunteerModel) error
	CreateAdmin(ctx context.Context, a *userModel.AdminModel) error
	FindDonorByID(ctx context.Context, id uuid.UUID) (*userModel.DonorModel, error)
	FindVolunteerByID(ctx context.Context, id uuid.UUID) (*userModel.VolunteerModel, error)
	FindAdminByID(ctx context.Context, id uuid.UUID) (*userModel.AdminModel, error)
	FindDonorByEmail(ctx context.Context, email string) (*userModel.DonorModel, error)
	FindVolunteerByEmail(ctx context.Context, email string) (*userModel.VolunteerModel, error)
	FindAdminByEmail(ctx context.Context, email string) (*userModel.AdminModel, error)
	UpdatePassword(ctx context.Context, kind string, id uuid.UUID, hash string) error
}

// Cases lets case owners sign in with the credentials given at submission.
type Cases interface {
	FindByID(ctx context.Context, id uuid.UUID) (*caseModel.CaseModel, error)
	FindByEmail(ctx context.Context, email string) (*caseModel.CaseModel, error)
}

type AuthService struct {
	accounts Accounts
	cases    Cases
	secret   string
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(accounts Accounts, cases Cases, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		accounts: accounts,
		cases:    cases,
		secret:   secret,
		ttl:      ttl,
		now:      dbtime.Now,
	}
}

const invalidCredentials = "invalid email or password"

/* ==========================
   REGISTER
========================== */

func (s *AuthService) RegisterDonor(ctx context.Context, req dto.RegisterDonorRequest) (*dto.AccountResponse, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.emailFree(ctx, dto.UserTypeDonor, req.Email); err != nil {
		return nil, err
	}
	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	d := &userModel.DonorModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		City:     req.City,
		IsActive: true,
	}
	if err := s.accounts.CreateDonor(ctx, d); err != nil {
		return nil, err
	}
	log.Printf("[INFO] donor registered: %s", d.ID)
	out := dto.FromDonor(d)
	return &out, nil
}

func (s *AuthService) RegisterVolunteer(ctx context.Context, req dto.RegisterVolunteerRequest) (*dto.AccountResponse, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.emailFree(ctx, dto.UserTypeVolunteer, req.Email); err != nil {
		return nil, err
	}
	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	v := &userModel.VolunteerModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		CNIC:     req.CNIC,
		District: req.District,
		IsActive: true,
	}
	if err := s.accounts.CreateVolunteer(ctx, v); err != nil {
		return nil, err
	}
	log.Printf("[INFO] volunteer registered: %s", v.ID)
	out := dto.FromVolunteer(v)
	return &out, nil
}

// CreateAdmin is reserved for the superadmin.
func (s *AuthService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AccountResponse, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.emailFree(ctx, dto.UserTypeAdmin, req.Email); err != nil {
		return nil, err
	}
	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	a := &userModel.AdminModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	}
	if err := s.accounts.CreateAdmin(ctx, a); err != nil {
		return nil, err
	}
	log.Printf("[INFO] %s created: %s", a.Role, a.ID)
	out := dto.FromAdmin(a)
	return &out, nil
}

// SeedSuperAdmin creates the superadmin account once. An existing account
// with the same email is left untouched.
func (s *AuthService) SeedSuperAdmin(ctx context.Context, name, email, password string) error {
	email = userModel.NormalizeEmail(email)
	if email == "" || password == "" {
		log.Println("[WARN] SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD not set, skipping superadmin seed")
		return nil
	}
	if _, err := s.accounts.FindAdminByEmail(ctx, email); err == nil {
		log.Printf("[INFO] superadmin %s already exists", email)
		return nil
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return err
	}
	if strings.TrimSpace(name) == "" {
		name = "Super Admin"
	}
	_, err := s.CreateAdmin(ctx, dto.CreateAdminRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     userModel.AdminRoleSuperAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("✅ superadmin %s seeded", email)
	return nil
}

func (s *AuthService) emailFree(ctx context.Context, kind, email string) error {
	var err error
	switch kind {
	case dto.UserTypeDonor:
		_, err = s.accounts.FindDonorByEmail(ctx, email)
	case dto.UserTypeVolunteer:
		_, err = s.accounts.FindVolunteerByEmail(ctx, email)
	case dto.UserTypeAdmin:
		_, err = s.accounts.FindAdminByEmail(ctx, email)
	}
	switch {
	case err == nil:
		return apperr.Precondition("email already registered")
	case apperr.Is(err, apperr.KindNotFound):
		return nil
	default:
		return err
	}
}

/* ==========================
   LOGIN
========================== */

type account struct {
	id       uuid.UUID
	role     string
	hash     string
	active   bool
	response dto.AccountResponse
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	acc, err := s.lookup(ctx, req.UserType, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthenticated(invalidCredentials)
		}
		return nil, err
	}
	if !authHelper.CheckPasswordHash(acc.hash, req.Password) {
		return nil, apperr.Unauthenticated(invalidCredentials)
	}
	if !acc.active {
		return nil, apperr.Authorization("your account has been deactivated")
	}

	token, exp, err := issueAccessToken(s.secret, acc.id, acc.role, s.now(), s.ttl)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] login ok: %s %s", acc.role, acc.id)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        acc.response,
	}, nil
}

func (s *AuthService) lookup(ctx context.Context, userType, email string) (*account, error) {
	switch userType {
	case dto.UserTypeDonor:
		d, err := s.accounts.FindDonorByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{d.ID, constants.RoleDonor, d.Password, d.IsActive, dto.FromDonor(d)}, nil
	case dto.UserTypeVolunteer:
		v, err := s.accounts.FindVolunteerByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{v.ID, constants.RoleVolunteer, v.Password, v.IsActive, dto.FromVolunteer(v)}, nil
	case dto.UserTypeAdmin:
		a, err := s.accounts.FindAdminByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{a.ID, strings.ToLower(a.Role), a.Password, a.IsActive, dto.FromAdmin(a)}, nil
	case dto.UserTypeNeedy:
		c, err := s.cases.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{c.CaseID, constants.RoleNeedy, c.CasePassword, c.CaseIsActive, dto.FromCase(c)}, nil
	}
	return nil, apperr.Validation("user_type must be donor, volunteer, admin or needy")
}

/* ==========================
   ME
========================== */

func (s *AuthService) Me(ctx context.Context, id uuid.UUID, role string) (*dto.AccountResponse, error) {
	var out dto.AccountResponse
	switch {
	case role == constants.RoleDonor:
		d, err := s.accounts.FindDonorByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = dto.FromDonor(d)
	case role == constants.RoleVolunteer:
		v, err := s.accounts.FindVolunteerByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = dto.FromVolunteer(v)
	case constants.IsAdminRole(role):
		a, err := s.accounts.FindAdminByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = dto.FromAdmin(a)
	case role == constants.RoleNeedy:
		c, err := s.cases.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = dto.FromCase(c)
	default:
		return nil, apperr.Authorization("unknown role")
	}
	return &out, nil
}
