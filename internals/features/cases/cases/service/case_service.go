package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"medaid_backend/internals/constants"
	areaModel "medaid_backend/internals/features/cases/areas/model"
	areaService "medaid_backend/internals/features/cases/areas/service"
	"medaid_backend/internals/features/cases/cases/dto"
	"medaid_backend/internals/features/cases/cases/model"
	"medaid_backend/internals/features/cases/cases/repository"
	notifModel "medaid_backend/internals/features/home/notifications/model"
	notifService "medaid_backend/internals/features/home/notifications/service"
	userModel "medaid_backend/internals/features/users/user/model"
	helper "medaid_backend/internals/helpers"
	"medaid_backend/internals/helpers/apperr"
	"medaid_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const reclassifyBatchSize = 200

type Store interface {
	Create(ctx context.Context, c *model.CaseModel) error
	NextCaseNumber(ctx context.Context, year int) (int, error)
	Mutate(ctx context.Context, id uuid.UUID, fn func(*model.CaseModel) error) (*model.CaseModel, error)
	UpdatePriority(ctx context.Context, id uuid.UUID, p areaModel.Priority) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CaseModel, error)
	Taken(ctx context.Context, email, cnic string) (emailTaken, cnicTaken bool, err error)
	List(ctx context.Context, f repository.ListFilter) ([]model.CaseModel, int64, error)
	ListActiveBatch(ctx context.Context, offset, limit int) ([]model.CaseModel, error)
}

// Directory looks up the reviewing accounts.
type Directory interface {
	FindVolunteerByID(ctx context.Context, id uuid.UUID) (*userModel.VolunteerModel, error)
	FindAdminByID(ctx context.Context, id uuid.UUID) (*userModel.AdminModel, error)
}

type Uploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type Notifier interface {
	Notify(ctx context.Context, n notifService.Notice)
}

type CaseFiles struct {
	CNICFront *multipart.FileHeader
	CNICBack  *multipart.FileHeader
	Documents []*multipart.FileHeader
}

type CaseService struct {
	store    Store
	users    Directory
	resolver *areaService.Resolver
	uploader Uploader
	notifier Notifier
	now      func() time.Time
}

func NewCaseService(store Store, users Directory, resolver *areaService.Resolver, uploader Uploader, notifier Notifier) *CaseService {
	return &CaseService{
		store:    store,
		users:    users,
		resolver: resolver,
		uploader: uploader,
		notifier: notifier,
		now:      dbtime.Now,
	}
}

/* ====================== SUBMIT ====================== */

func (s *CaseService) SubmitCase(ctx context.Context, req dto.SubmitCaseRequest, files CaseFiles) (*model.CaseModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	var dob *datatypes.Date
	if req.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperr.ValidationFields("validation failed", map[string][]string{
				"date_of_birth": {"date_of_birth must be YYYY-MM-DD"},
			})
		}
		d := datatypes.Date(t)
		dob = &d
	}

	emailTaken, cnicTaken, err := s.store.Taken(ctx, req.Email, req.CNIC)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperr.Precondition("a case with this email already exists")
	}
	if cnicTaken {
		return nil, apperr.Precondition("a case with this CNIC already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	c := &model.CaseModel{
		CaseName:            req.Name,
		CaseEmail:           req.Email,
		CasePassword:        string(hash),
		CasePhone:           req.Phone,
		CaseCNIC:            req.CNIC,
		CaseDateOfBirth:     dob,
		CaseAddress:         req.Address,
		CaseDistrict:        req.District,
		CaseArea:            req.Area,
		CasePriority:        s.resolver.Resolve(req.Area, req.District),
		CaseDiseaseType:     req.DiseaseType,
		CaseDiseaseName:     req.DiseaseName,
		CaseDescription:     req.Description,
		CaseHospitalName:    req.HospitalName,
		CaseIsZakatEligible: req.IsZakatEligible,
		CaseAmountNeeded:    req.AmountNeeded,
	}
	c.InitSubmitted()

	uploaded, err := s.uploadFiles(ctx, c, files)
	if err != nil {
		s.cleanup(uploaded)
		return nil, err
	}

	year := s.now().Year()
	seq, err := s.store.NextCaseNumber(ctx, year)
	if err != nil {
		s.cleanup(uploaded)
		return nil, err
	}
	c.CaseYear = year
	c.CaseNumber = model.FormatCaseNumber(year, seq)

	if err := s.store.Create(ctx, c); err != nil {
		s.cleanup(uploaded)
		return nil, err
	}
	log.Printf("[INFO] case submitted number=%s priority=%s district=%s", c.CaseNumber, c.CasePriority, c.CaseDistrict)
	return c, nil
}

func (s *CaseService) uploadFiles(ctx context.Context, c *model.CaseModel, files CaseFiles) ([]string, error) {
	var uploaded []string
	put := func(fh *multipart.FileHeader, folder string) (string, error) {
		url, err := s.uploader.Upload(ctx, fh, folder)
		if err != nil {
			return "", err
		}
		uploaded = append(uploaded, url)
		return url, nil
	}

	if files.CNICFront != nil {
		url, err := put(files.CNICFront, "cases/cnic")
		if err != nil {
			return uploaded, err
		}
		c.CaseCNICFrontURL = &url
	}
	if files.CNICBack != nil {
		url, err := put(files.CNICBack, "cases/cnic")
		if err != nil {
			return uploaded, err
		}
		c.CaseCNICBackURL = &url
	}

	docs := make([]model.CaseDocument, 0, len(files.Documents))
	for _, fh := range files.Documents {
		if fh == nil {
			continue
		}
		url, err := put(fh, "cases/documents")
		if err != nil {
			return uploaded, err
		}
		docs = append(docs, model.CaseDocument{Name: fh.Filename, URL: url})
	}
	if err := c.SetDocuments(docs); err != nil {
		return uploaded, apperr.Internal("failed to encode documents", err)
	}
	return uploaded, nil
}

// cleanup removes files stored for a submission that did not make it.
func (s *CaseService) cleanup(urls []string) {
	for _, u := range urls {
		if err := s.uploader.DeleteByPublicURL(context.Background(), u); err != nil {
			log.Printf("[WARN] orphan upload not removed %s: %v", u, err)
		}
	}
}

/* ====================== LIFECYCLE ====================== */

func (s *CaseService) reviewingAdmin(ctx context.Context, adminID uuid.UUID) (*userModel.AdminModel, error) {
	admin, err := s.users.FindAdminByID(ctx, adminID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Authorization("admin account not found")
		}
		return nil, err
	}
	if !admin.CanReview() {
		return nil, apperr.Authorization("admin account is inactive or lacks review rights")
	}
	return admin, nil
}

func (s *CaseService) activeVolunteer(ctx context.Context, volunteerID uuid.UUID) (*userModel.VolunteerModel, error) {
	vol, err := s.users.FindVolunteerByID(ctx, volunteerID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Authorization("volunteer account not found")
		}
		return nil, err
	}
	if !vol.IsActive {
		return nil, apperr.Authorization("volunteer account is inactive")
	}
	return vol, nil
}

func (s *CaseService) AssignVolunteer(ctx context.Context, caseID, volunteerID, adminID uuid.UUID) (*model.CaseModel, error) {
	if _, err := s.reviewingAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if volunteerID == uuid.Nil {
		return nil, apperr.Validation("volunteer_id is required")
	}
	vol, err := s.users.FindVolunteerByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if !vol.IsActive {
		return nil, apperr.Precondition("volunteer is not active")
	}

	c, err := s.store.Mutate(ctx, caseID, func(c *model.CaseModel) error {
		return c.AssignVolunteer(vol.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, vol.ID, constants.RoleVolunteer, notifModel.NotificationVolunteerAssigned,
		"New case assigned",
		fmt.Sprintf("Case %s has been assigned to you for review.", c.CaseNumber), c.CaseID)
	return c, nil
}

func (s *CaseService) VolunteerReview(ctx context.Context, caseID, volunteerID uuid.UUID, req dto.VolunteerReviewRequest) (*model.CaseModel, error) {
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	decision, err := model.ParseDecision(req.Decision)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeVolunteer(ctx, volunteerID); err != nil {
		return nil, err
	}

	now := s.now()
	c, err := s.store.Mutate(ctx, caseID, func(c *model.CaseModel) error {
		return c.ApplyVolunteerReview(volunteerID, decision, req.Reasons, now)
	})
	if err != nil {
		return nil, err
	}

	if decision == model.DecisionReject {
		s.notify(ctx, c.CaseID, constants.RoleNeedy, notifModel.NotificationCaseVolunteerRejected,
			"Case needs attention",
			fmt.Sprintf("The volunteer review of case %s found issues: %s.", c.CaseNumber, strings.Join(c.CaseVolunteerRejectionReasons, ", ")), c.CaseID)
	}
	return c, nil
}

func (s *CaseService) AdminReview(ctx context.Context, caseID, adminID uuid.UUID, req dto.AdminReviewRequest) (*model.CaseModel, error) {
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	decision, err := model.ParseDecision(req.Decision)
	if err != nil {
		return nil, err
	}
	admin, err := s.reviewingAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	c, err := s.store.Mutate(ctx, caseID, func(c *model.CaseModel) error {
		return c.ApplyAdminReview(admin.ID, decision, now)
	})
	if err != nil {
		return nil, err
	}

	if decision == model.DecisionApprove {
		s.notify(ctx, c.CaseID, constants.RoleNeedy, notifModel.NotificationCaseApproved,
			"Case approved",
			fmt.Sprintf("Your case %s has been approved and is now visible to donors.", c.CaseNumber), c.CaseID)
	} else {
		s.notify(ctx, c.CaseID, constants.RoleNeedy, notifModel.NotificationCaseRejected,
			"Case rejected",
			fmt.Sprintf("Your case %s has been rejected.", c.CaseNumber), c.CaseID)
	}
	log.Printf("[INFO] case %s reviewed by admin=%s decision=%s", c.CaseNumber, admin.ID, decision)
	return c, nil
}

// Deactivate is the only way a case leaves listings; cases are never deleted.
func (s *CaseService) Deactivate(ctx context.Context, caseID, adminID uuid.UUID) (*model.CaseModel, error) {
	if _, err := s.reviewingAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.store.Mutate(ctx, caseID, func(c *model.CaseModel) error {
		if !c.CaseIsActive {
			return apperr.Precondition("case is already inactive")
		}
		c.CaseIsActive = false
		return nil
	})
}

func (s *CaseService) notify(ctx context.Context, userID uuid.UUID, owner, typ, title, message string, caseID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	id := caseID
	s.notifier.Notify(ctx, notifService.Notice{
		UserID:      userID,
		UserModel:   owner,
		Type:        typ,
		Title:       title,
		Message:     message,
		RelatedID:   &id,
		RelatedType: "case",
	})
}

/* ====================== RECLASSIFY ====================== */

// Reclassify re-resolves the priority of every active case and writes only the
// ones that changed. Running it twice in a row updates nothing the second time.
func (s *CaseService) Reclassify(ctx context.Context) (dto.ReclassifyResponse, error) {
	var res dto.ReclassifyResponse
	for offset := 0; ; offset += reclassifyBatchSize {
		batch, err := s.store.ListActiveBatch(ctx, offset, reclassifyBatchSize)
		if err != nil {
			return res, err
		}
		for i := range batch {
			c := &batch[i]
			res.Scanned++
			p := s.resolver.Resolve(c.CaseArea, c.CaseDistrict)
			if p == c.CasePriority {
				continue
			}
			if err := s.store.UpdatePriority(ctx, c.CaseID, p); err != nil {
				return res, err
			}
			res.Updated++
		}
		if len(batch) < reclassifyBatchSize {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}
	log.Printf("[INFO] reclassify done: scanned=%d updated=%d", res.Scanned, res.Updated)
	return res, nil
}

/* ====================== QUERIES ====================== */

type PublicQuery struct {
	District        string
	Priority        string
	DiseaseType     string
	IsZakatEligible *bool
	Search          string
}

func (s *CaseService) ListPublic(ctx context.Context, q PublicQuery, p helper.Params) ([]model.CaseModel, int64, error) {
	active := true
	f := repository.ListFilter{
		Status:          model.CaseStatusAccepted,
		IsActive:        &active,
		District:        q.District,
		DiseaseType:     q.DiseaseType,
		IsZakatEligible: q.IsZakatEligible,
		Search:          q.Search,
		Offset:          p.Offset(),
		Limit:           p.Limit(),
	}
	if q.Priority != "" {
		pr, ok := areaModel.ParsePriority(q.Priority)
		if !ok {
			return nil, 0, apperr.Validation("priority must be High, Medium or Low")
		}
		f.Priority = string(pr)
	}
	return s.store.List(ctx, f)
}

// GetPublic only exposes accepted, active cases.
func (s *CaseService) GetPublic(ctx context.Context, id uuid.UUID) (*model.CaseModel, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CaseIsActive || c.CaseStatus != model.CaseStatusAccepted {
		return nil, apperr.NotFound("case not found")
	}
	return c, nil
}

func (s *CaseService) ListAdmin(ctx context.Context, f repository.ListFilter) ([]model.CaseModel, int64, error) {
	return s.store.List(ctx, f)
}

func (s *CaseService) Get(ctx context.Context, id uuid.UUID) (*model.CaseModel, error) {
	return s.store.FindByID(ctx, id)
}

func (s *CaseService) ListAssigned(ctx context.Context, volunteerID uuid.UUID, volunteerStatus string, p helper.Params) ([]model.CaseModel, int64, error) {
	active := true
	return s.store.List(ctx, repository.ListFilter{
		VolunteerID:     &volunteerID,
		VolunteerStatus: volunteerStatus,
		IsActive:        &active,
		Offset:          p.Offset(),
		Limit:           p.Limit(),
		Order:           "created_at DESC",
	})
}

func (s *CaseService) GetAssigned(ctx context.Context, id, volunteerID uuid.UUID) (*model.CaseModel, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.CaseVolunteerID == nil || *c.CaseVolunteerID != volunteerID {
		return nil, apperr.Authorization("you are not assigned to this case")
	}
	return c, nil
}
