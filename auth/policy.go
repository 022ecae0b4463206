package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/user/degreeportal-go/apperror"
)

// Access is the level a route or operation requires.
type Access int

const (
	// Public allows everyone.
	Public Access = iota
	// AuthenticatedOnly allows any verified token.
	AuthenticatedOnly
	// AdminOnly allows administrators.
	AdminOnly
	// SelfOrAdmin allows administrators and the owner of the target resource.
	SelfOrAdmin
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case AuthenticatedOnly:
		return "authenticated"
	case AdminOnly:
		return "admin"
	case SelfOrAdmin:
		return "self-or-admin"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

const (
	msgAuthRequired  = "Authentication required"
	msgNotAuthorized = "Not Authorized"
)

// Authorize decides whether s may perform an operation requiring access.
// ownerID is the userID owning the target and is only read for SelfOrAdmin.
// Missing authentication is 401; an authenticated caller without rights is 403.
func Authorize(s Subject, access Access, ownerID string) error {
	if access == Public {
		return nil
	}
	subject, ok := s.(Authenticated)
	if !ok {
		return apperror.NewUnauthorizedError(msgAuthRequired, nil)
	}
	claim := subject.Claim

	switch access {
	case AuthenticatedOnly:
		return nil
	case AdminOnly:
		if claim.IsAdministrator {
			return nil
		}
	case SelfOrAdmin:
		if claim.IsAdministrator || claim.UserID == ownerID {
			return nil
		}
	}
	return apperror.NewForbiddenError(msgNotAuthorized, fmt.Errorf("%s requires %s", claim.UserID, access))
}

// AuthorizeContext is Authorize for the Subject stored in ctx.
func AuthorizeContext(ctx context.Context, access Access, ownerID string) error {
	return Authorize(SubjectFromContext(ctx), access, ownerID)
}

// RestrictFields rejects non-administrators that sent any of the named
// admin-only fields. present lists the restricted fields found in the request.
func RestrictFields(s Subject, present ...string) error {
	if len(present) == 0 {
		return nil
	}
	subject, ok := s.(Authenticated)
	if !ok {
		return apperror.NewUnauthorizedError(msgAuthRequired, nil)
	}
	if subject.Claim.IsAdministrator {
		return nil
	}
	return apperror.NewForbiddenError(msgNotAuthorized,
		fmt.Errorf("%s may not set %s", subject.Claim.UserID, strings.Join(present, ", ")))
}

// RequireAccess rejects requests whose Subject does not meet access. It must
// run after JWTMiddleware. SelfOrAdmin needs an owner and is checked in services.
func RequireAccess(access Access) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := AuthorizeContext(r.Context(), access, ""); err != nil {
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
