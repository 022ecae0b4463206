// Package users encapsulates identity management: the admin CRUD surface,
// public self-registration and the bootstrap administrator.
// Every operation authorizes the caller before it touches the store.
package users

import (
	"context"
	"log/slog"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/auth"
	"github.com/user/degreeportal-go/validation"
)

// BootstrapUserID is the administrator that always exists after startup.
const BootstrapUserID = "admin"

// UserService provides identity management with the authorization policy applied.
type UserService struct {
	store             Store
	hasher            auth.PasswordHasher
	bootstrapPassword string
}

// NewUserService creates a new UserService.
func NewUserService(store Store, hasher auth.PasswordHasher, bootstrapPassword string) *UserService {
	return &UserService{store: store, hasher: hasher, bootstrapPassword: bootstrapPassword}
}

// List returns all identities. Administrators only.
func (s *UserService) List(ctx context.Context) ([]auth.Identity, error) {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

// Get returns one identity. The identity itself or an administrator.
func (s *UserService) Get(ctx context.Context, userID string) (*auth.Identity, error) {
	if err := auth.AuthorizeContext(ctx, auth.SelfOrAdmin, userID); err != nil {
		return nil, err
	}
	return s.store.FindByUserID(ctx, userID)
}

// Create adds an identity, possibly an administrator. Administrators only.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*auth.Identity, error) {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return nil, err
	}
	return s.insert(ctx, req)
}

// Register is public self-registration. It never creates an administrator.
func (s *UserService) Register(ctx context.Context, req CreateUserRequest) (*auth.Identity, error) {
	if req.IsAdministrator {
		return nil, apperror.NewForbiddenError("Not Authorized", nil)
	}
	return s.insert(ctx, req)
}

func (s *UserService) insert(ctx context.Context, req CreateUserRequest) (*auth.Identity, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}
	identity := &auth.Identity{
		UserID:          req.UserID,
		PasswordHash:    hash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		IsAdministrator: req.IsAdministrator,
	}
	if err := s.store.Insert(ctx, identity); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user created", "userID", identity.UserID, "isAdministrator", identity.IsAdministrator)
	return identity, nil
}

// Update changes an identity. The identity itself may change its names and
// password; only administrators may change isAdministrator. The userID is
// immutable: a body naming a different userID is rejected.
func (s *UserService) Update(ctx context.Context, userID string, req UpdateUserRequest) (*auth.Identity, error) {
	subject := auth.SubjectFromContext(ctx)
	if err := auth.Authorize(subject, auth.SelfOrAdmin, userID); err != nil {
		return nil, err
	}

	changesUserID := req.UserID != nil && *req.UserID != userID
	var restricted []string
	if req.IsAdministrator != nil {
		restricted = append(restricted, "isAdministrator")
	}
	if changesUserID {
		restricted = append(restricted, "userID")
	}
	if err := auth.RestrictFields(subject, restricted...); err != nil {
		return nil, err
	}
	if changesUserID {
		return nil, apperror.NewBadRequestError("cannot update userID", nil)
	}
	if req.Password != nil && *req.Password == "" {
		return nil, apperror.NewValidationError("password must not be empty", nil)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	identity, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		identity.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		identity.LastName = *req.LastName
	}
	if req.IsAdministrator != nil {
		identity.IsAdministrator = *req.IsAdministrator
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(ctx, *req.Password)
		if err != nil {
			return nil, err
		}
		identity.PasswordHash = hash
	}

	if err := s.store.Update(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Delete removes an identity. Administrators only.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := auth.AuthorizeContext(ctx, auth.AdminOnly, ""); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "user deleted", "userID", userID)
	return nil
}

// EnsureBootstrapIdentity creates the "admin" identity when it is missing.
// It is idempotent and safe to race: losing the insert to another instance
// counts as success. An existing admin is left untouched.
func (s *UserService) EnsureBootstrapIdentity(ctx context.Context) error {
	_, err := s.store.FindByUserID(ctx, BootstrapUserID)
	if err == nil {
		slog.DebugContext(ctx, "bootstrap administrator present", "userID", BootstrapUserID)
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	hash, err := s.hasher.Hash(ctx, s.bootstrapPassword)
	if err != nil {
		return err
	}
	err = s.store.Insert(ctx, &auth.Identity{
		UserID:          BootstrapUserID,
		PasswordHash:    hash,
		FirstName:       "default",
		LastName:        "admin",
		IsAdministrator: true,
	})
	if apperror.IsDuplicateKey(err) {
		slog.DebugContext(ctx, "bootstrap administrator created concurrently", "userID", BootstrapUserID)
		return nil
	}
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "bootstrap administrator created", "userID", BootstrapUserID)
	return nil
}
