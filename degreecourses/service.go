package degreecourses

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/auth"
	"github.com/user/degreeportal-go/validation"
)

// DegreeCourseService defines the catalog operations. Reads are public;
// writes require an administrator.
type DegreeCourseService interface {
	List(ctx context.Context, filter Filter) ([]DegreeCourse, error)
	Get(ctx context.Context, id string) (*DegreeCourse, error)
	Create(ctx context.Context, req CreateDegreeCourseRequest) (*DegreeCourse, error)
	Update(ctx context.Context, id string, req UpdateDegreeCourseRequest) (*DegreeCourse, error)
	Delete(ctx context.Context, id string) error
}

type degreeCourseServiceImpl struct {
	store Store
}

// NewDegreeCourseService creates a DegreeCourseService over store.
func NewDegreeCourseService(store Store) DegreeCourseService {
	return &degreeCourseServiceImpl{store: store}
}

func (s *degreeCourseServiceImpl) List(ctx context.Context, filter Filter) ([]DegreeCourse, error) {
	return s.store.List(ctx, filter)
}

func (s *degreeCourseServiceImpl) Get(ctx context.Context, id string) (*DegreeCourse, error) {
	id, err := validation.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

func (s *degreeCourseServiceImpl) Create(ctx context.Context, req CreateDegreeCourseRequest) (*DegreeCourse, error) {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	course := &DegreeCourse{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		ShortName:           req.ShortName,
		UniversityName:      req.UniversityName,
		UniversityShortName: req.UniversityShortName,
		DepartmentName:      req.DepartmentName,
		DepartmentShortName: req.DepartmentShortName,
	}
	if err := s.store.Insert(ctx, course); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "degree course created", "id", course.ID, "name", course.Name, "university", course.UniversityShortName)
	return course, nil
}

func (s *degreeCourseServiceImpl) Update(ctx context.Context, id string, req UpdateDegreeCourseRequest) (*DegreeCourse, error) {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return nil, err
	}
	id, err := validation.ParseID(id)
	if err != nil {
		return nil, err
	}
	if req.ID != nil {
		if bodyID, err := validation.ParseID(*req.ID); err != nil || bodyID != id {
			return nil, apperror.NewBadRequestError("cannot update id", nil)
		}
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	course, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if field := req.apply(course); field != "" {
		return nil, apperror.NewValidationError(field+" must not be empty", nil)
	}
	if err := s.store.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *degreeCourseServiceImpl) Delete(ctx context.Context, id string) error {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return err
	}
	id, err := validation.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "degree course deleted", "id", id)
	return nil
}
