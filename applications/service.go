package applications

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/auth"
	"github.com/user/degreeportal-go/degreecourses"
	"github.com/user/degreeportal-go/validation"
)

// CourseLookup resolves degree courses; degreecourses.Store satisfies it.
type CourseLookup interface {
	FindByID(ctx context.Context, id string) (*degreecourses.DegreeCourse, error)
}

// ApplicantLookup resolves identities; users.Store satisfies it.
type ApplicantLookup interface {
	FindByUserID(ctx context.Context, userID string) (*auth.Identity, error)
}

// ApplicationService defines the application operations with the policy applied.
type ApplicationService interface {
	MyApplications(ctx context.Context) ([]Application, error)
	List(ctx context.Context, filter Filter) ([]Application, error)
	ListForCourse(ctx context.Context, courseID string) ([]Application, error)
	Get(ctx context.Context, id string) (*Application, error)
	Create(ctx context.Context, req CreateApplicationRequest) (*Application, error)
	Update(ctx context.Context, id string, req UpdateApplicationRequest) (*Application, error)
	Delete(ctx context.Context, id string) error
}

type applicationServiceImpl struct {
	store      Store
	courses    CourseLookup
	applicants ApplicantLookup
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(store Store, courses CourseLookup, applicants ApplicantLookup) ApplicationService {
	return &applicationServiceImpl{store: store, courses: courses, applicants: applicants}
}

// MyApplications lists the caller's own applications.
func (s *applicationServiceImpl) MyApplications(ctx context.Context) ([]Application, error) {
	claim, ok := auth.ClaimFromContext(ctx)
	if !ok {
		return nil, auth.AuthorizeContext(ctx, auth.AuthenticatedOnly, "")
	}
	return s.store.List(ctx, Filter{ApplicantUserID: claim.UserID})
}

// List searches all applications. Administrators only.
func (s *applicationServiceImpl) List(ctx context.Context, filter Filter) ([]Application, error) {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return nil, err
	}
	if filter.DegreeCourseID != "" {
		id, err := validation.ParseID(filter.DegreeCourseID)
		if err != nil {
			return nil, err
		}
		filter.DegreeCourseID = id
	}
	return s.store.List(ctx, filter)
}

// ListForCourse lists the applications to one course. Administrators only.
func (s *applicationServiceImpl) ListForCourse(ctx context.Context, courseID string) ([]Application, error) {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return nil, err
	}
	courseID, err := validation.ParseID(courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.store.List(ctx, Filter{DegreeCourseID: courseID})
}

// load authenticates the caller, fetches the application and checks ownership.
func (s *applicationServiceImpl) load(ctx context.Context, id string) (*Application, error) {
	subject := auth.SubjectFromContext(ctx)
	if err := auth.Authorize(subject, auth.AuthenticatedOnly, ""); err != nil {
		return nil, err
	}
	id, err := validation.ParseID(id)
	if err != nil {
		return nil, err
	}
	app, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(subject, auth.SelfOrAdmin, app.ApplicantUserID); err != nil {
		return nil, err
	}
	return app, nil
}

// Get returns one application to its applicant or an administrator.
func (s *applicationServiceImpl) Get(ctx context.Context, id string) (*Application, error) {
	return s.load(ctx, id)
}

// Create files an application for the caller, or for any applicant when the
// caller is an administrator. The course and applicant must exist.
func (s *applicationServiceImpl) Create(ctx context.Context, req CreateApplicationRequest) (*Application, error) {
	claim, ok := auth.ClaimFromContext(ctx)
	if !ok {
		return nil, auth.AuthorizeContext(ctx, auth.AuthenticatedOnly, "")
	}
	if req.ApplicantUserID == "" {
		req.ApplicantUserID = claim.UserID
	}
	if err := auth.AuthorizeContext(ctx, auth.SelfOrAdmin, req.ApplicantUserID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	courseID, err := validation.ParseID(req.DegreeCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.ApplicantUserID, courseID); err != nil {
		return nil, err
	}

	app := &Application{
		ID:                    uuid.NewString(),
		ApplicantUserID:       req.ApplicantUserID,
		DegreeCourseID:        courseID,
		TargetPeriodYear:      req.TargetPeriodYear,
		TargetPeriodShortName: req.TargetPeriodShortName,
	}
	if err := s.store.Insert(ctx, app); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "application created",
		"id", app.ID, "applicantUserID", app.ApplicantUserID, "degreeCourseID", app.DegreeCourseID, "createdBy", claim.UserID)
	return app, nil
}

func (s *applicationServiceImpl) checkReferences(ctx context.Context, applicantUserID, courseID string) error {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return err
	}
	if _, err := s.applicants.FindByUserID(ctx, applicantUserID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFoundError("Applicant not found", nil)
		}
		return err
	}
	return nil
}

// Update changes the target period. Administrators may also move the
// application to another applicant or course.
func (s *applicationServiceImpl) Update(ctx context.Context, id string, req UpdateApplicationRequest) (*Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var restricted []string
	if req.ApplicantUserID != nil && *req.ApplicantUserID != "" && *req.ApplicantUserID != app.ApplicantUserID {
		restricted = append(restricted, "applicantUserID")
	}
	if req.DegreeCourseID != nil && *req.DegreeCourseID != "" {
		courseID := *req.DegreeCourseID
		if canonical, err := validation.ParseID(courseID); err == nil {
			courseID = canonical
		}
		if courseID != app.DegreeCourseID {
			restricted = append(restricted, "degreeCourseID")
		}
	}
	if err := auth.RestrictFields(auth.SubjectFromContext(ctx), restricted...); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if len(restricted) > 0 {
		if req.ApplicantUserID != nil && *req.ApplicantUserID != "" {
			app.ApplicantUserID = *req.ApplicantUserID
		}
		if req.DegreeCourseID != nil && *req.DegreeCourseID != "" {
			courseID, err := validation.ParseID(*req.DegreeCourseID)
			if err != nil {
				return nil, err
			}
			app.DegreeCourseID = courseID
		}
		if err := s.checkReferences(ctx, app.ApplicantUserID, app.DegreeCourseID); err != nil {
			return nil, err
		}
	}
	if req.TargetPeriodYear != nil {
		app.TargetPeriodYear = *req.TargetPeriodYear
	}
	if req.TargetPeriodShortName != nil {
		app.TargetPeriodShortName = *req.TargetPeriodShortName
	}

	if err := s.store.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Delete withdraws an application. Its applicant or an administrator.
func (s *applicationServiceImpl) Delete(ctx context.Context, id string) error {
	app, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, app.ID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "application deleted", "id", app.ID, "applicantUserID", app.ApplicantUserID)
	return nil
}
