package controller

import (
	"mime/multipart"
	"strings"

	"medaid_backend/internals/features/cases/cases/dto"
	"medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/features/cases/cases/repository"
	"medaid_backend/internals/features/cases/cases/service"
	helper "medaid_backend/internals/helpers"
	"medaid_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CaseController struct {
	Service *service.CaseService
}

func NewCaseController(svc *service.CaseService) *CaseController {
	return &CaseController{Service: svc}
}

// whitelisted sort keys for admin listings
var adminSortColumns = map[string]string{
	"created_at":    "created_at",
	"case_number":   "case_number",
	"amount_needed": "case_amount_needed",
	"raised":        "case_total_donations",
	"priority":      "CASE case_priority WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END",
}

func optionalBool(c *fiber.Ctx, key string) *bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "true", "1", "yes":
		v := true
		return &v
	case "false", "0", "no":
		v := false
		return &v
	}
	return nil
}

/* ====================== PUBLIC ====================== */

// 🟢 POST /api/public/cases  (multipart: fields + cnic_front, cnic_back, documents[])
func (ctrl *CaseController) SubmitCase(c *fiber.Ctx) error {
	var req dto.SubmitCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	files, err := collectCaseFiles(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	created, err := ctrl.Service.SubmitCase(c.Context(), req, files)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Case submitted successfully", dto.ToCaseResponse(created))
}

func collectCaseFiles(c *fiber.Ctx) (service.CaseFiles, error) {
	var files service.CaseFiles
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return files, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return files, apperr.Validation("invalid multipart form")
	}
	first := func(key string) *multipart.FileHeader {
		if fhs := form.File[key]; len(fhs) > 0 {
			return fhs[0]
		}
		return nil
	}
	files.CNICFront = first("cnic_front")
	files.CNICBack = first("cnic_back")
	files.Documents = append(files.Documents, form.File["documents"]...)
	files.Documents = append(files.Documents, form.File["documents[]"]...)
	return files, nil
}

// 🟢 GET /api/public/cases?district=&priority=&disease_type=&zakat=&search=
func (ctrl *CaseController) ListPublicCases(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "priority", "asc", helper.DefaultOpts)
	q := service.PublicQuery{
		District:        c.Query("district"),
		Priority:        c.Query("priority"),
		DiseaseType:     strings.ToLower(strings.TrimSpace(c.Query("disease_type"))),
		IsZakatEligible: optionalBool(c, "zakat"),
		Search:          c.Query("search"),
	}

	rows, total, err := ctrl.Service.ListPublic(c.Context(), q, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Cases fetched", dto.ToPublicCaseResponseList(rows), helper.BuildPagination(total, p, len(rows)))
}

// 🟢 GET /api/public/cases/:id
func (ctrl *CaseController) GetPublicCase(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	found, err := ctrl.Service.GetPublic(c.Context(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Case fetched", dto.ToPublicCaseResponse(found))
}

/* ====================== OWNER ====================== */

// 🟢 GET /api/u/cases/mine
func (ctrl *CaseController) GetMyCase(c *fiber.Ctx) error {
	caseID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	found, err := ctrl.Service.Get(c.Context(), caseID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Case fetched", dto.ToCaseResponse(found))
}

/* ====================== VOLUNTEER ====================== */

// 🟢 GET /api/v/cases?volunteer_status=pending
func (ctrl *CaseController) ListAssignedCases(c *fiber.Ctx) error {
	volunteerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctrl.Service.ListAssigned(c.Context(), volunteerID, strings.ToLower(c.Query("volunteer_status")), p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Assigned cases fetched", dto.ToCaseResponseList(rows), helper.BuildPagination(total, p, len(rows)))
}

// 🟢 GET /api/v/cases/:id
func (ctrl *CaseController) GetAssignedCase(c *fiber.Ctx) error {
	volunteerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	found, err := ctrl.Service.GetAssigned(c.Context(), id, volunteerID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Case fetched", dto.ToCaseResponse(found))
}

// 🟢 PATCH /api/v/cases/:id/review  {decision, reasons[]}
func (ctrl *CaseController) VolunteerReview(c *fiber.Ctx) error {
	volunteerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.VolunteerReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updated, err := ctrl.Service.VolunteerReview(c.Context(), id, volunteerID, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Review saved", dto.ToCaseResponse(updated))
}

/* ====================== ADMIN ====================== */

// 🟢 GET /api/a/cases?status=&volunteer_status=&district=&priority=&disease_type=&zakat=&is_active=&volunteer_id=&search=
func (ctrl *CaseController) ListCases(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	volunteerID, err := helper.ParseUUIDQuery(c, "volunteer_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	f := repository.ListFilter{
		Status:          strings.ToLower(strings.TrimSpace(c.Query("status"))),
		VolunteerStatus: strings.ToLower(strings.TrimSpace(c.Query("volunteer_status"))),
		VolunteerID:     volunteerID,
		District:        c.Query("district"),
		DiseaseType:     strings.ToLower(strings.TrimSpace(c.Query("disease_type"))),
		IsZakatEligible: optionalBool(c, "zakat"),
		IsActive:        optionalBool(c, "is_active"),
		Search:          c.Query("search"),
		Offset:          p.Offset(),
		Limit:           p.Limit(),
		Order:           p.SafeOrder(adminSortColumns, "created_at"),
	}
	if f.Status != "" && f.Status != model.CaseStatusPending && f.Status != model.CaseStatusAccepted && f.Status != model.CaseStatusRejected {
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be pending, accepted or rejected")
	}
	if pr := strings.TrimSpace(c.Query("priority")); pr != "" {
		f.Priority = strings.ToUpper(pr[:1]) + strings.ToLower(pr[1:])
	}

	rows, total, err := ctrl.Service.ListAdmin(c.Context(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "Cases fetched", dto.ToCaseResponseList(rows), helper.BuildPagination(total, p, len(rows)))
}

// 🟢 GET /api/a/cases/:id
func (ctrl *CaseController) GetCase(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	found, err := ctrl.Service.Get(c.Context(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Case fetched", dto.ToCaseResponse(found))
}

// 🟢 PATCH /api/a/cases/:id/assign-volunteer  {volunteer_id}
func (ctrl *CaseController) AssignVolunteer(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.AssignVolunteerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromError(c, err)
	}
	volunteerID, err := uuidFrom(req.VolunteerID)
	if err != nil {
		return helper.FromError(c, err)
	}

	updated, err := ctrl.Service.AssignVolunteer(c.Context(), id, volunteerID, adminID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Volunteer assigned", dto.ToCaseResponse(updated))
}

// 🟢 PATCH /api/a/cases/:id/review  {decision}
func (ctrl *CaseController) AdminReview(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.AdminReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updated, err := ctrl.Service.AdminReview(c.Context(), id, adminID, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Review saved", dto.ToCaseResponse(updated))
}

// 🟢 PATCH /api/a/cases/:id/deactivate
func (ctrl *CaseController) DeactivateCase(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	updated, err := ctrl.Service.Deactivate(c.Context(), id, adminID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Case deactivated", dto.ToCaseResponse(updated))
}

// 🟢 POST /api/a/cases/reclassify
func (ctrl *CaseController) Reclassify(c *fiber.Ctx) error {
	res, err := ctrl.Service.Reclassify(c.Context())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Priorities recalculated", res)
}

func uuidFrom(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, apperr.Validation("volunteer_id must be a valid UUID")
	}
	return id, nil
}
