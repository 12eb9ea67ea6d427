package repository

import (
	"context"
	"errors"
	"strings"

	areaModel "medaid_backend/internals/features/cases/areas/model"
	"medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CaseRepository struct {
	DB *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{DB: db}
}

// ListFilter covers the public, admin and volunteer listings. Nil/empty fields
// are ignored.
type ListFilter struct {
	Status          string
	VolunteerStatus string
	VolunteerID     *uuid.UUID
	District        string
	Priority        string
	DiseaseType     string
	IsZakatEligible *bool
	IsActive        *bool
	Search          string
	Offset          int
	Limit           int
	Order           string
}

// PriorityOrder sorts High → Medium → Low, newest first inside a tier.
const PriorityOrder = "CASE case_priority WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END ASC, created_at DESC"

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("case not found")
	}
	return apperr.FromDB(err, "failed to load case")
}

/* ====================== WRITE ====================== */

func (r *CaseRepository) Create(ctx context.Context, c *model.CaseModel) error {
	return apperr.FromDB(r.DB.WithContext(ctx).Create(c).Error, "failed to create case")
}

// NextCaseNumber advances the per-year sequence with a single upsert, so two
// concurrent submissions never see the same value.
func (r *CaseRepository) NextCaseNumber(ctx context.Context, year int) (int, error) {
	row := model.CaseSequence{CaseSequenceYear: year, CaseSequenceLastSeq: 1}
	err := r.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "case_sequence_year"}},
				DoUpdates: clause.Assignments(map[string]any{
					"case_sequence_last_seq": gorm.Expr("case_sequences.case_sequence_last_seq + 1"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "case_sequence_last_seq"}}},
		).
		Create(&row).Error
	if err != nil {
		return 0, apperr.FromDB(err, "failed to allocate case number")
	}
	return row.CaseSequenceLastSeq, nil
}

// Mutate loads the case under a row lock, applies fn and saves the result in
// the same transaction. An error from fn rolls everything back.
func (r *CaseRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(*model.CaseModel) error) (*model.CaseModel, error) {
	var out model.CaseModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&out, "case_id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		if err := fn(&out); err != nil {
			return err
		}
		if err := tx.Save(&out).Error; err != nil {
			return apperr.FromDB(err, "failed to update case")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CaseRepository) UpdatePriority(ctx context.Context, id uuid.UUID, p areaModel.Priority) error {
	err := r.DB.WithContext(ctx).Model(&model.CaseModel{}).
		Where("case_id = ?", id).
		Update("case_priority", p).Error
	return apperr.FromDB(err, "failed to update case priority")
}

/* ====================== READ ====================== */

func (r *CaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CaseModel, error) {
	var c model.CaseModel
	if err := r.DB.WithContext(ctx).First(&c, "case_id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

func (r *CaseRepository) FindByEmail(ctx context.Context, email string) (*model.CaseModel, error) {
	var c model.CaseModel
	if err := r.DB.WithContext(ctx).Where("case_email = ?", model.NormalizeEmail(email)).First(&c).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

// Taken reports which of email / CNIC already belong to a case.
func (r *CaseRepository) Taken(ctx context.Context, email, cnic string) (emailTaken, cnicTaken bool, err error) {
	var rows []struct {
		CaseEmail string
		CaseCNIC  string
	}
	err = r.DB.WithContext(ctx).Model(&model.CaseModel{}).
		Select("case_email, case_cnic").
		Where("case_email = ? OR case_cnic = ?", email, cnic).
		Limit(2).
		Scan(&rows).Error
	if err != nil {
		return false, false, apperr.FromDB(err, "failed to check duplicates")
	}
	for _, row := range rows {
		emailTaken = emailTaken || row.CaseEmail == email
		cnicTaken = cnicTaken || row.CaseCNIC == cnic
	}
	return emailTaken, cnicTaken, nil
}

func (r *CaseRepository) List(ctx context.Context, f ListFilter) ([]model.CaseModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.CaseModel{})

	if f.Status != "" {
		q = q.Where("case_status = ?", f.Status)
	}
	if f.VolunteerStatus != "" {
		q = q.Where("case_volunteer_id IS NOT NULL AND case_volunteer_approval_status = ?", f.VolunteerStatus)
	}
	if f.VolunteerID != nil {
		q = q.Where("case_volunteer_id = ?", *f.VolunteerID)
	}
	if d := strings.TrimSpace(f.District); d != "" {
		q = q.Where("LOWER(case_district) = ?", strings.ToLower(d))
	}
	if f.Priority != "" {
		q = q.Where("case_priority = ?", f.Priority)
	}
	if f.DiseaseType != "" {
		q = q.Where("case_disease_type = ?", f.DiseaseType)
	}
	if f.IsZakatEligible != nil {
		q = q.Where("case_is_zakat_eligible = ?", *f.IsZakatEligible)
	}
	if f.IsActive != nil {
		q = q.Where("case_is_active = ?", *f.IsActive)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(case_name) LIKE ? OR LOWER(case_area) LIKE ? OR LOWER(case_number) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "failed to count cases")
	}

	order := f.Order
	if order == "" {
		order = PriorityOrder
	}
	var rows []model.CaseModel
	if err := q.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "failed to list cases")
	}
	return rows, total, nil
}

// ListActiveBatch pages through active cases in a stable order.
func (r *CaseRepository) ListActiveBatch(ctx context.Context, offset, limit int) ([]model.CaseModel, error) {
	var rows []model.CaseModel
	err := r.DB.WithContext(ctx).
		Select("case_id, case_area, case_district, case_priority").
		Where("case_is_active = ?", true).
		Order("created_at ASC, case_id ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.FromDB(err, "failed to load cases")
	}
	return rows, nil
}

/* ====================== STATS ====================== */

type CaseStats struct {
	ByStatus                map[string]int64 `json:"by_status"`
	ByPriority              map[string]int64 `json:"by_priority"`
	PendingVolunteerReviews int64            `json:"pending_volunteer_reviews"`
	TotalRaised             int64            `json:"total_raised"`
}

func (r *CaseRepository) Stats(ctx context.Context) (*CaseStats, error) {
	db := r.DB.WithContext(ctx)
	out := &CaseStats{ByStatus: map[string]int64{}, ByPriority: map[string]int64{}}

	type bucket struct {
		BucketKey string
		Total     int64
	}
	var byStatus []bucket
	if err := db.Model(&model.CaseModel{}).
		Select("case_status AS bucket_key, COUNT(*) AS total").
		Where("case_is_active = ?", true).
		Group("case_status").Scan(&byStatus).Error; err != nil {
		return nil, apperr.FromDB(err, "failed to count cases by status")
	}
	for _, b := range byStatus {
		out.ByStatus[b.BucketKey] = b.Total
	}

	var byPriority []bucket
	if err := db.Model(&model.CaseModel{}).
		Select("case_priority AS bucket_key, COUNT(*) AS total").
		Where("case_is_active = ?", true).
		Group("case_priority").Scan(&byPriority).Error; err != nil {
		return nil, apperr.FromDB(err, "failed to count cases by priority")
	}
	for _, b := range byPriority {
		out.ByPriority[b.BucketKey] = b.Total
	}

	if err := db.Model(&model.CaseModel{}).
		Where("case_is_active = ? AND case_status = ? AND case_volunteer_id IS NOT NULL AND case_volunteer_approval_status = ?",
			true, model.CaseStatusPending, model.VolunteerApprovalPending).
		Count(&out.PendingVolunteerReviews).Error; err != nil {
		return nil, apperr.FromDB(err, "failed to count pending reviews")
	}

	if err := db.Model(&model.CaseModel{}).
		Select("COALESCE(SUM(case_total_donations), 0)").
		Scan(&out.TotalRaised).Error; err != nil {
		return nil, apperr.FromDB(err, "failed to sum donations")
	}
	return out, nil
}
