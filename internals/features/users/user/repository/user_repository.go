package repository

import (
	"context"
	"errors"
	"strings"

	"medaid_backend/internals/features/users/user/model"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// ListFilter is shared by the donor/volunteer/admin listings.
type ListFilter struct {
	Search   string
	IsActive *bool
	District string
	Offset   int
	Limit    int
	Order    string
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what + " not found")
	}
	return apperr.FromDB(err, "failed to load "+what)
}

func applyListFilter(q *gorm.DB, f ListFilter) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func page[T any](q *gorm.DB, f ListFilter) ([]T, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order := f.Order
	if order == "" {
		order = "created_at DESC"
	}
	var rows []T
	if err := q.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* ====================== DONOR ====================== */

func (r *UserRepository) CreateDonor(ctx context.Context, d *model.DonorModel) error {
	return apperr.FromDB(r.DB.WithContext(ctx).Create(d).Error, "failed to create donor")
}

func (r *UserRepository) FindDonorByID(ctx context.Context, id uuid.UUID) (*model.DonorModel, error) {
	var d model.DonorModel
	if err := r.DB.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "donor")
	}
	return &d, nil
}

func (r *UserRepository) FindDonorByEmail(ctx context.Context, email string) (*model.DonorModel, error) {
	var d model.DonorModel
	if err := r.DB.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&d).Error; err != nil {
		return nil, notFoundOr(err, "donor")
	}
	return &d, nil
}

func (r *UserRepository) ListDonors(ctx context.Context, f ListFilter) ([]model.DonorModel, int64, error) {
	q := applyListFilter(r.DB.WithContext(ctx).Model(&model.DonorModel{}), f)
	rows, total, err := page[model.DonorModel](q, f)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "failed to list donors")
	}
	return rows, total, nil
}

func (r *UserRepository) SetDonorActive(ctx context.Context, id uuid.UUID, active bool) (*model.DonorModel, error) {
	res := r.DB.WithContext(ctx).Model(&model.DonorModel{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, "failed to update donor")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("donor not found")
	}
	return r.FindDonorByID(ctx, id)
}

/* ====================== VOLUNTEER ====================== */

func (r *UserRepository) CreateVolunteer(ctx context.Context, v *model.VolunteerModel) error {
	return apperr.FromDB(r.DB.WithContext(ctx).Create(v).Error, "failed to create volunteer")
}

func (r *UserRepository) FindVolunteerByID(ctx context.Context, id uuid.UUID) (*model.VolunteerModel, error) {
	var v model.VolunteerModel
	if err := r.DB.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "volunteer")
	}
	return &v, nil
}

func (r *UserRepository) FindVolunteerByEmail(ctx context.Context, email string) (*model.VolunteerModel, error) {
	var v model.VolunteerModel
	if err := r.DB.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&v).Error; err != nil {
		return nil, notFoundOr(err, "volunteer")
	}
	return &v, nil
}

func (r *UserRepository) ListVolunteers(ctx context.Context, f ListFilter) ([]model.VolunteerModel, int64, error) {
	q := applyListFilter(r.DB.WithContext(ctx).Model(&model.VolunteerModel{}), f)
	if d := strings.TrimSpace(f.District); d != "" {
		q = q.Where("LOWER(district) = ?", strings.ToLower(d))
	}
	rows, total, err := page[model.VolunteerModel](q, f)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "failed to list volunteers")
	}
	return rows, total, nil
}

func (r *UserRepository) SetVolunteerActive(ctx context.Context, id uuid.UUID, active bool) (*model.VolunteerModel, error) {
	res := r.DB.WithContext(ctx).Model(&model.VolunteerModel{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, "failed to update volunteer")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("volunteer not found")
	}
	return r.FindVolunteerByID(ctx, id)
}

/* ====================== ADMIN ====================== */

func (r *UserRepository) CreateAdmin(ctx context.Context, a *model.AdminModel) error {
	return apperr.FromDB(r.DB.WithContext(ctx).Create(a).Error, "failed to create admin")
}

func (r *UserRepository) FindAdminByID(ctx context.Context, id uuid.UUID) (*model.AdminModel, error) {
	var a model.AdminModel
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "admin")
	}
	return &a, nil
}

func (r *UserRepository) FindAdminByEmail(ctx context.Context, email string) (*model.AdminModel, error) {
	var a model.AdminModel
	if err := r.DB.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&a).Error; err != nil {
		return nil, notFoundOr(err, "admin")
	}
	return &a, nil
}

func (r *UserRepository) ListAdmins(ctx context.Context, f ListFilter) ([]model.AdminModel, int64, error) {
	q := applyListFilter(r.DB.WithContext(ctx).Model(&model.AdminModel{}), f)
	rows, total, err := page[model.AdminModel](q, f)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "failed to list admins")
	}
	return rows, total, nil
}

func (r *UserRepository) SetAdminActive(ctx context.Context, id uuid.UUID, active bool) (*model.AdminModel, error) {
	res := r.DB.WithContext(ctx).Model(&model.AdminModel{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, "failed to update admin")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("admin not found")
	}
	return r.FindAdminByID(ctx, id)
}

/* ====================== COUNTS ====================== */

func (r *UserRepository) CountActive(ctx context.Context) (donors, volunteers int64, err error) {
	db := r.DB.WithContext(ctx)
	if err = db.Model(&model.DonorModel{}).Where("is_active = ?", true).Count(&donors).Error; err != nil {
		return 0, 0, apperr.FromDB(err, "failed to count donors")
	}
	if err = db.Model(&model.VolunteerModel{}).Where("is_active = ?", true).Count(&volunteers).Error; err != nil {
		return 0, 0, apperr.FromDB(err, "failed to count volunteers")
	}
	return donors, volunteers, nil
}

/* ====================== PASSWORD ====================== */

// UpdatePassword writes a new hash for the account of the given kind
// (donor, volunteer or admin).
func (r *UserRepository) UpdatePassword(ctx context.Context, kind string, id uuid.UUID, hash string) error {
	var target any
	switch kind {
	case "donor":
		target = &model.DonorModel{}
	case "volunteer":
		target = &model.VolunteerModel{}
	case "admin":
		target = &model.AdminModel{}
	default:
		return apperr.Validation("unknown account type")
	}
	res := r.DB.WithContext(ctx).Model(target).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "failed to update password")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(kind + " not found")
	}
	return nil
}
