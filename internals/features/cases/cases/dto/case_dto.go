package dto

import (
	"strings"
	"time"

	"medaid_backend/internals/features/cases/cases/model"

	"github.com/google/uuid"
)

/* ===================== REQUEST ===================== */

// SubmitCaseRequest is bound from multipart form fields; files travel separately.
type SubmitCaseRequest struct {
	Name            string `json:"name" form:"name" validate:"required,max=100"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	Phone           string `json:"phone" form:"phone" validate:"required,max=20"`
	CNIC            string `json:"cnic" form:"cnic" validate:"required,max=20"`
	DateOfBirth     string `json:"date_of_birth" form:"date_of_birth"` // YYYY-MM-DD
	Address         string `json:"address" form:"address"`
	District        string `json:"district" form:"district" validate:"required,max=50"`
	Area            string `json:"area" form:"area" validate:"required,max=150"`
	DiseaseType     string `json:"disease_type" form:"disease_type" validate:"required,oneof=chronic other"`
	DiseaseName     string `json:"disease_name" form:"disease_name" validate:"max=150"`
	Description     string `json:"description" form:"description"`
	HospitalName    string `json:"hospital_name" form:"hospital_name" validate:"max=150"`
	AmountNeeded    int64  `json:"amount_needed" form:"amount_needed" validate:"required,gt=0"`
	IsZakatEligible bool   `json:"is_zakat_eligible" form:"is_zakat_eligible"`
}

func (r *SubmitCaseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = model.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.CNIC = strings.TrimSpace(r.CNIC)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.Address = strings.TrimSpace(r.Address)
	r.District = strings.TrimSpace(r.District)
	r.Area = strings.TrimSpace(r.Area)
	r.DiseaseType = strings.ToLower(strings.TrimSpace(r.DiseaseType))
	r.DiseaseName = strings.TrimSpace(r.DiseaseName)
	r.Description = strings.TrimSpace(r.Description)
	r.HospitalName = strings.TrimSpace(r.HospitalName)
}

type AssignVolunteerRequest struct {
	VolunteerID string `json:"volunteer_id" validate:"required,uuid"`
}

type VolunteerReviewRequest struct {
	Decision string   `json:"decision" validate:"required"`
	Reasons  []string `json:"reasons"`
}

type AdminReviewRequest struct {
	Decision string `json:"decision" validate:"required"`
}

/* ===================== RESPONSE ===================== */

// PublicCaseResponse hides owner contact and identity details.
type PublicCaseResponse struct {
	CaseID              uuid.UUID `json:"case_id"`
	CaseNumber          string    `json:"case_number"`
	CaseName            string    `json:"case_name"`
	CaseDistrict        string    `json:"case_district"`
	CaseArea            string    `json:"case_area"`
	CasePriority        string    `json:"case_priority"`
	CaseDiseaseType     string    `json:"case_disease_type"`
	CaseDiseaseName     string    `json:"case_disease_name"`
	CaseDescription     string    `json:"case_description"`
	CaseHospitalName    string    `json:"case_hospital_name"`
	CaseIsZakatEligible bool      `json:"case_is_zakat_eligible"`
	CaseAmountNeeded    int64     `json:"case_amount_needed"`
	CaseTotalDonations  int64     `json:"case_total_donations"`
	CaseRemainingAmount int64     `json:"case_remaining_amount"`
	CreatedAt           time.Time `json:"created_at"`
}

type CaseResponse struct {
	PublicCaseResponse

	CaseEmail                     string               `json:"case_email"`
	CasePhone                     string               `json:"case_phone"`
	CaseCNIC                      string               `json:"case_cnic"`
	CaseDateOfBirth               *string              `json:"case_date_of_birth,omitempty"`
	CaseAddress                   string               `json:"case_address"`
	CaseStage                     string               `json:"case_stage"`
	CaseStatus                    string               `json:"case_status"`
	CaseIsVerified                bool                 `json:"case_is_verified"`
	CaseIsActive                  bool                 `json:"case_is_active"`
	CaseVolunteerID               *uuid.UUID           `json:"case_volunteer_id,omitempty"`
	CaseVolunteerApprovalStatus   string               `json:"case_volunteer_approval_status"`
	CaseVolunteerRejectionReasons []string             `json:"case_volunteer_rejection_reasons"`
	CaseVolunteerReviewedAt       *time.Time           `json:"case_volunteer_reviewed_at,omitempty"`
	CaseAdminReviewedBy           *uuid.UUID           `json:"case_admin_reviewed_by,omitempty"`
	CaseAdminReviewedAt           *time.Time           `json:"case_admin_reviewed_at,omitempty"`
	CaseCNICFrontURL              *string              `json:"case_cnic_front_url,omitempty"`
	CaseCNICBackURL               *string              `json:"case_cnic_back_url,omitempty"`
	CaseDocuments                 []model.CaseDocument `json:"case_documents"`
	UpdatedAt                     time.Time            `json:"updated_at"`
}

type ReclassifyResponse struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
}

/* ===================== CONVERSION ===================== */

func ToPublicCaseResponse(m *model.CaseModel) PublicCaseResponse {
	return PublicCaseResponse{
		CaseID:              m.CaseID,
		CaseNumber:          m.CaseNumber,
		CaseName:            m.CaseName,
		CaseDistrict:        m.CaseDistrict,
		CaseArea:            m.CaseArea,
		CasePriority:        string(m.CasePriority),
		CaseDiseaseType:     m.CaseDiseaseType,
		CaseDiseaseName:     m.CaseDiseaseName,
		CaseDescription:     m.CaseDescription,
		CaseHospitalName:    m.CaseHospitalName,
		CaseIsZakatEligible: m.CaseIsZakatEligible,
		CaseAmountNeeded:    m.CaseAmountNeeded,
		CaseTotalDonations:  m.CaseTotalDonations,
		CaseRemainingAmount: m.RemainingAmount(),
		CreatedAt:           m.CreatedAt,
	}
}

func ToPublicCaseResponseList(rows []model.CaseModel) []PublicCaseResponse {
	out := make([]PublicCaseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToPublicCaseResponse(&rows[i]))
	}
	return out
}

func ToCaseResponse(m *model.CaseModel) CaseResponse {
	var dob *string
	if m.CaseDateOfBirth != nil {
		s := time.Time(*m.CaseDateOfBirth).Format("2006-01-02")
		dob = &s
	}
	reasons := []string(m.CaseVolunteerRejectionReasons)
	if reasons == nil {
		reasons = []string{}
	}
	docs := m.Documents()
	if docs == nil {
		docs = []model.CaseDocument{}
	}
	return CaseResponse{
		PublicCaseResponse:            ToPublicCaseResponse(m),
		CaseEmail:                     m.CaseEmail,
		CasePhone:                     m.CasePhone,
		CaseCNIC:                      m.CaseCNIC,
		CaseDateOfBirth:               dob,
		CaseAddress:                   m.CaseAddress,
		CaseStage:                     string(m.Stage()),
		CaseStatus:                    m.CaseStatus,
		CaseIsVerified:                m.CaseIsVerified,
		CaseIsActive:                  m.CaseIsActive,
		CaseVolunteerID:               m.CaseVolunteerID,
		CaseVolunteerApprovalStatus:   m.CaseVolunteerApprovalStatus,
		CaseVolunteerRejectionReasons: reasons,
		CaseVolunteerReviewedAt:       m.CaseVolunteerReviewedAt,
		CaseAdminReviewedBy:           m.CaseAdminReviewedBy,
		CaseAdminReviewedAt:           m.CaseAdminReviewedAt,
		CaseCNICFrontURL:              m.CaseCNICFrontURL,
		CaseCNICBackURL:               m.CaseCNICBackURL,
		CaseDocuments:                 docs,
		UpdatedAt:                     m.UpdatedAt,
	}
}

func ToCaseResponseList(rows []model.CaseModel) []CaseResponse {
	out := make([]CaseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToCaseResponse(&rows[i]))
	}
	return out
}
