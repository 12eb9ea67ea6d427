package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentJazzCash     = "jazzcash"
	PaymentEasyPaisa    = "easypaisa"
	PaymentBankTransfer = "bank_transfer"
	PaymentCard         = "card"
	PaymentCash         = "cash"
)

var PaymentMethods = []string{PaymentJazzCash, PaymentEasyPaisa, PaymentBankTransfer, PaymentCard, PaymentCash}

func IsValidPaymentMethod(m string) bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

const (
	DonationStatusPending   = "pending"
	DonationStatusCompleted = "completed"
	DonationStatusFailed    = "failed"
)

// DonationModel rows are append-only.
type DonationModel struct {
	DonationID              uuid.UUID `gorm:"column:donation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"donation_id"`
	DonationDonorID         uuid.UUID `gorm:"column:donation_donor_id;type:uuid;not null;index" json:"donation_donor_id"`
	DonationCaseID          uuid.UUID `gorm:"column:donation_case_id;type:uuid;not null;index" json:"donation_case_id"`
	DonationAmount          int64     `gorm:"column:donation_amount;not null;check:donation_amount > 0" json:"donation_amount"`
	DonationPaymentMethod   string    `gorm:"column:donation_payment_method;type:varchar(20);not null" json:"donation_payment_method"`
	DonationStatus          string    `gorm:"column:donation_status;type:varchar(20);not null;default:'completed'" json:"donation_status"`
	DonationIsZakatDonation bool      `gorm:"column:donation_is_zakat_donation;not null;default:false" json:"donation_is_zakat_donation"`
	DonationMessage         string    `gorm:"column:donation_message;type:text" json:"donation_message"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (DonationModel) TableName() string { return "donations" }

// DonorCaseLink marks that a donor has helped a case at least once. The
// composite primary key makes "first donation to this case" an insert-if-absent.
type DonorCaseLink struct {
	DonorCaseLinkDonorID uuid.UUID `gorm:"column:donor_case_link_donor_id;type:uuid;primaryKey" json:"donor_case_link_donor_id"`
	DonorCaseLinkCaseID  uuid.UUID `gorm:"column:donor_case_link_case_id;type:uuid;primaryKey" json:"donor_case_link_case_id"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (DonorCaseLink) TableName() string { return "donor_case_links" }
