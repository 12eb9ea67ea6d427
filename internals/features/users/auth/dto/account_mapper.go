package dto

import (
	"strings"

	caseModel "medaid_backend/internals/features/cases/cases/model"
	userModel "medaid_backend/internals/features/users/user/model"
)

func FromDonor(d *userModel.DonorModel) AccountResponse {
	total, amount, helped := d.TotalDonations, d.TotalAmountDonated, d.CasesHelped
	return AccountResponse{
		ID:                 d.ID,
		Name:               d.Name,
		Email:              d.Email,
		Role:               UserTypeDonor,
		IsActive:           d.IsActive,
		Phone:              d.Phone,
		City:               d.City,
		TotalDonations:     &total,
		TotalAmountDonated: &amount,
		CasesHelped:        &helped,
	}
}

func FromVolunteer(v *userModel.VolunteerModel) AccountResponse {
	return AccountResponse{
		ID:       v.ID,
		Name:     v.Name,
		Email:    v.Email,
		Role:     UserTypeVolunteer,
		IsActive: v.IsActive,
		Phone:    v.Phone,
		District: v.District,
	}
}

func FromAdmin(a *userModel.AdminModel) AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Role:     strings.ToLower(a.Role),
		IsActive: a.IsActive,
	}
}

func FromCase(c *caseModel.CaseModel) AccountResponse {
	return AccountResponse{
		ID:         c.CaseID,
		Name:       c.CaseName,
		Email:      c.CaseEmail,
		Role:       UserTypeNeedy,
		IsActive:   c.CaseIsActive,
		Phone:      c.CasePhone,
		District:   c.CaseDistrict,
		CaseNumber: c.CaseNumber,
	}
}
