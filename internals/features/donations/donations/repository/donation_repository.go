package repository

import (
	"context"
	"errors"

	caseModel "medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/features/donations/donations/model"
	userModel "medaid_backend/internals/features/users/user/model"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DonationTx is the set of writes that make up one recorded donation. All of
// them run inside the same database transaction.
type DonationTx interface {
	LockCase(caseID uuid.UUID) (*caseModel.CaseModel, error)
	FindDonor(donorID uuid.UUID) (*userModel.DonorModel, error)
	InsertDonation(d *model.DonationModel) error
	// MarkDonorHelpedCase reports true only for the first donation of this donor to this case.
	MarkDonorHelpedCase(donorID, caseID uuid.UUID) (bool, error)
	IncrementDonorStats(donorID uuid.UUID, amount, casesHelpedDelta int64) (*userModel.DonorModel, error)
	IncrementCaseTotal(caseID uuid.UUID, amount int64) (int64, error)
}

type DonationRepository struct {
	DB *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{DB: db}
}

func (r *DonationRepository) WithinTx(ctx context.Context, fn func(tx DonationTx) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormDonationTx{tx: tx})
	})
}

type gormDonationTx struct {
	tx *gorm.DB
}

func (g *gormDonationTx) LockCase(caseID uuid.UUID) (*caseModel.CaseModel, error) {
	var c caseModel.CaseModel
	err := g.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("case_id, case_number, case_status, case_is_active, case_total_donations").
		First(&c, "case_id = ?", caseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("case not found")
	}
	if err != nil {
		return nil, apperr.FromDB(err, "failed to load case")
	}
	return &c, nil
}

func (g *gormDonationTx) FindDonor(donorID uuid.UUID) (*userModel.DonorModel, error) {
	var d userModel.DonorModel
	err := g.tx.First(&d, "id = ?", donorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("donor not found")
	}
	if err != nil {
		return nil, apperr.FromDB(err, "failed to load donor")
	}
	return &d, nil
}

func (g *gormDonationTx) InsertDonation(d *model.DonationModel) error {
	return apperr.FromDB(g.tx.Create(d).Error, "failed to save donation")
}

func (g *gormDonationTx) MarkDonorHelpedCase(donorID, caseID uuid.UUID) (bool, error) {
	res := g.tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.DonorCaseLink{DonorCaseLinkDonorID: donorID, DonorCaseLinkCaseID: caseID})
	if res.Error != nil {
		return false, apperr.FromDB(res.Error, "failed to link donor and case")
	}
	return res.RowsAffected == 1, nil
}

func (g *gormDonationTx) IncrementDonorStats(donorID uuid.UUID, amount, casesHelpedDelta int64) (*userModel.DonorModel, error) {
	var d userModel.DonorModel
	res := g.tx.Model(&d).
		Clauses(clause.Returning{}).
		Where("id = ?", donorID).
		UpdateColumns(map[string]any{
			"total_donations":      gorm.Expr("total_donations + 1"),
			"total_amount_donated": gorm.Expr("total_amount_donated + ?", amount),
			"cases_helped":         gorm.Expr("cases_helped + ?", casesHelpedDelta),
		})
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, "failed to update donor stats")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("donor not found")
	}
	return &d, nil
}

func (g *gormDonationTx) IncrementCaseTotal(caseID uuid.UUID, amount int64) (int64, error) {
	var c caseModel.CaseModel
	res := g.tx.Model(&c).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "case_total_donations"}}}).
		Where("case_id = ?", caseID).
		UpdateColumn("case_total_donations", gorm.Expr("case_total_donations + ?", amount))
	if res.Error != nil {
		return 0, apperr.FromDB(res.Error, "failed to update case total")
	}
	if res.RowsAffected == 0 {
		return 0, apperr.NotFound("case not found")
	}
	return c.CaseTotalDonations, nil
}

/* ====================== READ ====================== */

type ListFilter struct {
	DonorID *uuid.UUID
	CaseID  *uuid.UUID
	Offset  int
	Limit   int
	Order   string
}

func (r *DonationRepository) List(ctx context.Context, f ListFilter) ([]model.DonationModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.DonationModel{})
	if f.DonorID != nil {
		q = q.Where("donation_donor_id = ?", *f.DonorID)
	}
	if f.CaseID != nil {
		q = q.Where("donation_case_id = ?", *f.CaseID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "failed to count donations")
	}

	order := f.Order
	if order == "" {
		order = "created_at DESC"
	}
	var rows []model.DonationModel
	if err := q.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "failed to list donations")
	}
	return rows, total, nil
}

func (r *DonationRepository) SumCompleted(ctx context.Context) (int64, error) {
	var sum int64
	err := r.DB.WithContext(ctx).Model(&model.DonationModel{}).
		Where("donation_status = ?", model.DonationStatusCompleted).
		Select("COALESCE(SUM(donation_amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, apperr.FromDB(err, "failed to sum donations")
	}
	return sum, nil
}
