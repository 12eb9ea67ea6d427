package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	areaModel "medaid_backend/internals/features/cases/areas/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/* ===================== Constants ===================== */

const (
	CaseStatusPending  = "pending"
	CaseStatusAccepted = "accepted"
	CaseStatusRejected = "rejected"
)

const (
	VolunteerApprovalPending  = "pending"
	VolunteerApprovalApproved = "approved"
	VolunteerApprovalRejected = "rejected"
)

const (
	DiseaseTypeChronic = "chronic"
	DiseaseTypeOther   = "other"
)

/* ===================== Model ===================== */

type CaseDocument struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type CaseModel struct {
	CaseID     uuid.UUID `gorm:"column:case_id;type:uuid;default:gen_random_uuid();primaryKey" json:"case_id"`
	CaseNumber string    `gorm:"column:case_number;type:varchar(20);not null;uniqueIndex" json:"case_number"`
	CaseYear   int       `gorm:"column:case_year;not null;index" json:"case_year"`

	// Owner
	CaseName        string          `gorm:"column:case_name;type:varchar(100);not null" json:"case_name"`
	CaseEmail       string          `gorm:"column:case_email;type:varchar(255);not null;uniqueIndex" json:"case_email"`
	CasePassword    string          `gorm:"column:case_password;not null" json:"-"`
	CasePhone       string          `gorm:"column:case_phone;type:varchar(20)" json:"case_phone"`
	CaseCNIC        string          `gorm:"column:case_cnic;type:varchar(20);not null;uniqueIndex" json:"case_cnic"`
	CaseDateOfBirth *datatypes.Date `gorm:"column:case_date_of_birth" json:"case_date_of_birth,omitempty"`
	CaseAddress     string          `gorm:"column:case_address;type:text" json:"case_address"`

	// Classification
	CaseDistrict        string             `gorm:"column:case_district;type:varchar(50);not null;index" json:"case_district"`
	CaseArea            string             `gorm:"column:case_area;type:varchar(150);not null" json:"case_area"`
	CasePriority        areaModel.Priority `gorm:"column:case_priority;type:varchar(10);not null;index" json:"case_priority"`
	CaseDiseaseType     string             `gorm:"column:case_disease_type;type:varchar(20);not null" json:"case_disease_type"`
	CaseDiseaseName     string             `gorm:"column:case_disease_name;type:varchar(150)" json:"case_disease_name"`
	CaseDescription     string             `gorm:"column:case_description;type:text" json:"case_description"`
	CaseHospitalName    string             `gorm:"column:case_hospital_name;type:varchar(150)" json:"case_hospital_name"`
	CaseIsZakatEligible bool               `gorm:"column:case_is_zakat_eligible;not null;default:false" json:"case_is_zakat_eligible"`

	// Financial
	CaseAmountNeeded   int64 `gorm:"column:case_amount_needed;not null;check:case_amount_needed > 0" json:"case_amount_needed"`
	CaseTotalDonations int64 `gorm:"column:case_total_donations;not null;default:0" json:"case_total_donations"`

	// Lifecycle
	CaseStatus                    string         `gorm:"column:case_status;type:varchar(20);not null;default:'pending';index" json:"case_status"`
	CaseIsVerified                bool           `gorm:"column:case_is_verified;not null;default:false" json:"case_is_verified"`
	CaseVolunteerID               *uuid.UUID     `gorm:"column:case_volunteer_id;type:uuid;index" json:"case_volunteer_id,omitempty"`
	CaseVolunteerApprovalStatus   string         `gorm:"column:case_volunteer_approval_status;type:varchar(20);not null;default:'pending'" json:"case_volunteer_approval_status"`
	CaseVolunteerRejectionReasons pq.StringArray `gorm:"column:case_volunteer_rejection_reasons;type:text[]" json:"case_volunteer_rejection_reasons"`
	CaseVolunteerReviewedAt       *time.Time     `gorm:"column:case_volunteer_reviewed_at" json:"case_volunteer_reviewed_at,omitempty"`
	CaseAdminReviewedBy           *uuid.UUID     `gorm:"column:case_admin_reviewed_by;type:uuid" json:"case_admin_reviewed_by,omitempty"`
	CaseAdminReviewedAt           *time.Time     `gorm:"column:case_admin_reviewed_at" json:"case_admin_reviewed_at,omitempty"`

	// Attachments
	CaseCNICFrontURL *string        `gorm:"column:case_cnic_front_url;type:text" json:"case_cnic_front_url,omitempty"`
	CaseCNICBackURL  *string        `gorm:"column:case_cnic_back_url;type:text" json:"case_cnic_back_url,omitempty"`
	CaseDocuments    datatypes.JSON `gorm:"column:case_documents;type:jsonb" json:"case_documents,omitempty"`

	CaseIsActive bool      `gorm:"column:case_is_active;not null;default:true;index" json:"case_is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CaseModel) TableName() string { return "cases" }

// CaseSequence holds the last issued case number per year.
type CaseSequence struct {
	CaseSequenceYear    int `gorm:"column:case_sequence_year;primaryKey;autoIncrement:false" json:"case_sequence_year"`
	CaseSequenceLastSeq int `gorm:"column:case_sequence_last_seq;not null;default:0" json:"case_sequence_last_seq"`
}

func (CaseSequence) TableName() string { return "case_sequences" }

/* ===================== Helpers ===================== */

// FormatCaseNumber renders CASE-<year>-<5-digit seq>.
func FormatCaseNumber(year, seq int) string {
	return fmt.Sprintf("CASE-%d-%05d", year, seq)
}

func (c *CaseModel) Documents() []CaseDocument {
	if len(c.CaseDocuments) == 0 {
		return nil
	}
	var docs []CaseDocument
	if err := json.Unmarshal(c.CaseDocuments, &docs); err != nil {
		return nil
	}
	return docs
}

func (c *CaseModel) SetDocuments(docs []CaseDocument) error {
	if len(docs) == 0 {
		c.CaseDocuments = nil
		return nil
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	c.CaseDocuments = datatypes.JSON(raw)
	return nil
}

// RemainingAmount never goes below zero.
func (c *CaseModel) RemainingAmount() int64 {
	if c.CaseTotalDonations >= c.CaseAmountNeeded {
		return 0
	}
	return c.CaseAmountNeeded - c.CaseTotalDonations
}

func IsValidDiseaseType(s string) bool {
	return s == DiseaseTypeChronic || s == DiseaseTypeOther
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
