package model

import (
	"strings"
	"time"

	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

/* ===================== Stages ===================== */

type Stage string

const (
	StageSubmitted         Stage = "submitted"
	StageVolunteerAssigned Stage = "volunteer_assigned"
	StageVolunteerApproved Stage = "volunteer_approved"
	StageVolunteerRejected Stage = "volunteer_rejected"
	StageAdminAccepted     Stage = "admin_accepted"
	StageAdminRejected     Stage = "admin_rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(s))) {
	case DecisionApprove:
		return DecisionApprove, nil
	case DecisionReject:
		return DecisionReject, nil
	}
	return "", apperr.Validation("decision must be approve or reject")
}

/* ===================== Rejection reasons ===================== */

const (
	ReasonPersonalInfo  = "Personal information issue"
	ReasonFinancialInfo = "Financial information issue"
	ReasonDiseaseInfo   = "Disease information issue"
)

var RejectionReasons = []string{ReasonPersonalInfo, ReasonFinancialInfo, ReasonDiseaseInfo}

// NormalizeRejectionReasons validates reasons against the closed set and drops
// duplicates, keeping first-seen order.
func NormalizeRejectionReasons(reasons []string) ([]string, error) {
	if len(reasons) == 0 {
		return nil, apperr.Validation("at least one rejection reason is required")
	}
	seen := make(map[string]struct{}, len(reasons))
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		r = strings.TrimSpace(r)
		if !isKnownReason(r) {
			return nil, apperr.Validation("unknown rejection reason: " + r)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

func isKnownReason(r string) bool {
	for _, known := range RejectionReasons {
		if r == known {
			return true
		}
	}
	return false
}

/* ===================== State machine ===================== */

// Stage derives the lifecycle stage from the stored fields.
func (c *CaseModel) Stage() Stage {
	switch c.CaseStatus {
	case CaseStatusAccepted:
		return StageAdminAccepted
	case CaseStatusRejected:
		return StageAdminRejected
	}
	if c.CaseVolunteerID == nil {
		return StageSubmitted
	}
	switch c.CaseVolunteerApprovalStatus {
	case VolunteerApprovalApproved:
		return StageVolunteerApproved
	case VolunteerApprovalRejected:
		return StageVolunteerRejected
	default:
		return StageVolunteerAssigned
	}
}

func (c *CaseModel) IsTerminal() bool {
	s := c.Stage()
	return s == StageAdminAccepted || s == StageAdminRejected
}

// InitSubmitted puts a freshly built case in the Submitted stage.
func (c *CaseModel) InitSubmitted() {
	c.CaseStatus = CaseStatusPending
	c.CaseIsVerified = false
	c.CaseVolunteerID = nil
	c.CaseVolunteerApprovalStatus = VolunteerApprovalPending
	c.CaseVolunteerRejectionReasons = nil
	c.CaseIsActive = true
}

// AssignVolunteer (re)assigns a volunteer and resets the volunteer review.
func (c *CaseModel) AssignVolunteer(volunteerID uuid.UUID) error {
	if volunteerID == uuid.Nil {
		return apperr.Validation("volunteer_id is required")
	}
	if c.IsTerminal() {
		return apperr.Precondition("case has already been reviewed by admin")
	}
	id := volunteerID
	c.CaseVolunteerID = &id
	c.CaseVolunteerApprovalStatus = VolunteerApprovalPending
	c.CaseVolunteerRejectionReasons = nil
	c.CaseVolunteerReviewedAt = nil
	return nil
}

// ApplyVolunteerReview records the assigned volunteer's decision.
func (c *CaseModel) ApplyVolunteerReview(volunteerID uuid.UUID, decision Decision, reasons []string, now time.Time) error {
	if c.CaseVolunteerID == nil || *c.CaseVolunteerID != volunteerID {
		return apperr.Authorization("you are not assigned to this case")
	}
	if c.IsTerminal() {
		return apperr.Precondition("case has already been reviewed by admin")
	}

	switch decision {
	case DecisionApprove:
		c.CaseVolunteerApprovalStatus = VolunteerApprovalApproved
		c.CaseVolunteerRejectionReasons = nil
	case DecisionReject:
		clean, err := NormalizeRejectionReasons(reasons)
		if err != nil {
			return err
		}
		c.CaseVolunteerApprovalStatus = VolunteerApprovalRejected
		c.CaseVolunteerRejectionReasons = pq.StringArray(clean)
	default:
		return apperr.Validation("decision must be approve or reject")
	}
	c.CaseVolunteerReviewedAt = &now
	return nil
}

// ApplyAdminReview records the final admin decision. Approval needs either no
// assigned volunteer or an approving volunteer; rejection has no precondition.
func (c *CaseModel) ApplyAdminReview(adminID uuid.UUID, decision Decision, now time.Time) error {
	if c.IsTerminal() {
		return apperr.Precondition("case has already been reviewed by admin")
	}

	switch decision {
	case DecisionApprove:
		if c.CaseVolunteerID != nil && c.CaseVolunteerApprovalStatus != VolunteerApprovalApproved {
			return apperr.Precondition("case must be approved by volunteer first")
		}
		c.CaseStatus = CaseStatusAccepted
		c.CaseIsVerified = true
	case DecisionReject:
		c.CaseStatus = CaseStatusRejected
		c.CaseIsVerified = false
	default:
		return apperr.Validation("decision must be approve or reject")
	}
	id := adminID
	c.CaseAdminReviewedBy = &id
	c.CaseAdminReviewedAt = &now
	return nil
}
