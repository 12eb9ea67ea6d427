package dto

import (
	"strings"
	"time"

	"medaid_backend/internals/features/donations/donations/model"

	"github.com/google/uuid"
)

type CreateDonationRequest struct {
	CaseID          string `json:"case_id" validate:"required,uuid"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=jazzcash easypaisa bank_transfer card cash"`
	IsZakatDonation bool   `json:"is_zakat_donation"`
	Message         string `json:"message" validate:"max=500"`
}

func (r *CreateDonationRequest) Normalize() {
	r.CaseID = strings.TrimSpace(r.CaseID)
	r.PaymentMethod = strings.ToLower(strings.TrimSpace(r.PaymentMethod))
	r.Message = strings.TrimSpace(r.Message)
}

type DonationResponse struct {
	DonationID              uuid.UUID `json:"donation_id"`
	DonationDonorID         uuid.UUID `json:"donation_donor_id"`
	DonationCaseID          uuid.UUID `json:"donation_case_id"`
	DonationAmount          int64     `json:"donation_amount"`
	DonationPaymentMethod   string    `json:"donation_payment_method"`
	DonationStatus          string    `json:"donation_status"`
	DonationIsZakatDonation bool      `json:"donation_is_zakat_donation"`
	DonationMessage         string    `json:"donation_message,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

type DonorStats struct {
	TotalDonations     int64 `json:"total_donations"`
	TotalAmountDonated int64 `json:"total_amount_donated"`
	CasesHelped        int64 `json:"cases_helped"`
}

// ReceiptResponse is returned right after a donation is recorded.
type ReceiptResponse struct {
	Donation            DonationResponse `json:"donation"`
	Donor               DonorStats       `json:"donor"`
	CaseTotalDonations  int64            `json:"case_total_donations"`
	FirstDonationToCase bool             `json:"first_donation_to_case"`
}

func ToDonationResponse(m *model.DonationModel) DonationResponse {
	return DonationResponse{
		DonationID:              m.DonationID,
		DonationDonorID:         m.DonationDonorID,
		DonationCaseID:          m.DonationCaseID,
		DonationAmount:          m.DonationAmount,
		DonationPaymentMethod:   m.DonationPaymentMethod,
		DonationStatus:          m.DonationStatus,
		DonationIsZakatDonation: m.DonationIsZakatDonation,
		DonationMessage:         m.DonationMessage,
		CreatedAt:               m.CreatedAt,
	}
}

func ToDonationResponseList(rows []model.DonationModel) []DonationResponse {
	out := make([]DonationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToDonationResponse(&rows[i]))
	}
	return out
}
