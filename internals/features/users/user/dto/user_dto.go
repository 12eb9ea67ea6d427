package dto

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// SetActiveRequest toggles an account; a nil flag is rejected.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
