package service

import (
	"context"
	"fmt"
	"log"

	"medaid_backend/internals/constants"
	caseModel "medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/features/donations/donations/dto"
	"medaid_backend/internals/features/donations/donations/model"
	"medaid_backend/internals/features/donations/donations/repository"
	notifModel "medaid_backend/internals/features/home/notifications/model"
	notifService "medaid_backend/internals/features/home/notifications/service"
	helper "medaid_backend/internals/helpers"
	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
)

type Store interface {
	WithinTx(ctx context.Context, fn func(tx repository.DonationTx) error) error
	List(ctx context.Context, f repository.ListFilter) ([]model.DonationModel, int64, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notifService.Notice)
}

type DonationService struct {
	store    Store
	notifier Notifier
}

func NewDonationService(store Store, notifier Notifier) *DonationService {
	return &DonationService{store: store, notifier: notifier}
}

// RecordDonation inserts the donation and applies the donor and case counters
// in one transaction. The case row stays locked until commit.
func (s *DonationService) RecordDonation(ctx context.Context, donorID uuid.UUID, req dto.CreateDonationRequest) (*dto.ReceiptResponse, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		return nil, apperr.Validation("case_id must be a valid UUID")
	}

	var (
		receipt    dto.ReceiptResponse
		caseNumber string
	)
	err = s.store.WithinTx(ctx, func(tx repository.DonationTx) error {
		donor, err := tx.FindDonor(donorID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Authorization("donor account not found")
			}
			return err
		}
		if !donor.IsActive {
			return apperr.Authorization("donor account is deactivated")
		}

		c, err := tx.LockCase(caseID)
		if err != nil {
			return err
		}
		if !c.CaseIsActive || c.CaseStatus != caseModel.CaseStatusAccepted {
			return apperr.Precondition("case is not accepting donations")
		}
		caseNumber = c.CaseNumber

		d := &model.DonationModel{
			DonationDonorID:         donorID,
			DonationCaseID:          caseID,
			DonationAmount:          req.Amount,
			DonationPaymentMethod:   req.PaymentMethod,
			DonationStatus:          model.DonationStatusCompleted,
			DonationIsZakatDonation: req.IsZakatDonation,
			DonationMessage:         req.Message,
		}
		if err := tx.InsertDonation(d); err != nil {
			return err
		}

		first, err := tx.MarkDonorHelpedCase(donorID, caseID)
		if err != nil {
			return err
		}
		var helped int64
		if first {
			helped = 1
		}
		updated, err := tx.IncrementDonorStats(donorID, req.Amount, helped)
		if err != nil {
			return err
		}
		total, err := tx.IncrementCaseTotal(caseID, req.Amount)
		if err != nil {
			return err
		}

		receipt = dto.ReceiptResponse{
			Donation: dto.ToDonationResponse(d),
			Donor: dto.DonorStats{
				TotalDonations:     updated.TotalDonations,
				TotalAmountDonated: updated.TotalAmountDonated,
				CasesHelped:        updated.CasesHelped,
			},
			CaseTotalDonations:  total,
			FirstDonationToCase: first,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] donation %s recorded for case %s (amount=%d)", receipt.Donation.DonationID, caseNumber, req.Amount)
	s.notifyOwner(ctx, caseID, receipt.Donation.DonationID, caseNumber, req.Amount)
	return &receipt, nil
}

func (s *DonationService) notifyOwner(ctx context.Context, caseID, donationID uuid.UUID, caseNumber string, amount int64) {
	if s.notifier == nil {
		return
	}
	id := donationID
	s.notifier.Notify(ctx, notifService.Notice{
		UserID:      caseID,
		UserModel:   constants.RoleNeedy,
		Type:        notifModel.NotificationDonationReceived,
		Title:       "Donation received",
		Message:     fmt.Sprintf("Your case %s received a donation of Rs. %d.", caseNumber, amount),
		RelatedID:   &id,
		RelatedType: "donation",
	})
}

/* ====================== QUERIES ====================== */

func (s *DonationService) ListMine(ctx context.Context, donorID uuid.UUID, p helper.Params) ([]model.DonationModel, int64, error) {
	return s.store.List(ctx, repository.ListFilter{DonorID: &donorID, Offset: p.Offset(), Limit: p.Limit()})
}

func (s *DonationService) ListForCase(ctx context.Context, caseID uuid.UUID, p helper.Params) ([]model.DonationModel, int64, error) {
	return s.store.List(ctx, repository.ListFilter{CaseID: &caseID, Offset: p.Offset(), Limit: p.Limit()})
}

func (s *DonationService) ListAdmin(ctx context.Context, f repository.ListFilter) ([]model.DonationModel, int64, error) {
	return s.store.List(ctx, f)
}
