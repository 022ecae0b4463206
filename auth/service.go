// Package auth is responsible for authentication and authorization in the degree portal.
// It verifies passwords, issues and checks bearer tokens, and decides which
// Subject may perform which operation.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/user/degreeportal-go/apperror"
)

// msgLoginFailed is returned for every credential failure so callers cannot
// tell an unknown user from a wrong password.
const msgLoginFailed = "Failed to create token: Authentication failed"

// CredentialStore is the read side of the identity store that login needs.
// FindByUserID returns an apperror NotFound when no identity has userID.
type CredentialStore interface {
	FindByUserID(ctx context.Context, userID string) (*Identity, error)
}

// Service verifies credentials and issues tokens.
type Service struct {
	store  CredentialStore
	hasher PasswordHasher
	issuer *TokenIssuer

	dummyMu   sync.Mutex
	dummyHash string
}

// NewService creates a new Service.
func NewService(store CredentialStore, hasher PasswordHasher, issuer *TokenIssuer) *Service {
	return &Service{store: store, hasher: hasher, issuer: issuer}
}

// VerifyCredentials checks userID and password against the stored hash.
// Unknown users and wrong passwords yield the same InvalidCredentials error;
// unknown users still pay for one hash comparison.
func (s *Service) VerifyCredentials(ctx context.Context, userID, password string) (Claim, error) {
	identity, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return Claim{}, err
		}
		s.burnComparison(ctx, password)
		return Claim{}, apperror.NewInvalidCredentialsError(msgLoginFailed, nil)
	}

	ok, err := s.hasher.Verify(ctx, password, identity.PasswordHash)
	if err != nil {
		slog.WarnContext(ctx, "stored password hash is unreadable", "userID", userID, "error", err)
		return Claim{}, apperror.NewInvalidCredentialsError(msgLoginFailed, err)
	}
	if !ok {
		return Claim{}, apperror.NewInvalidCredentialsError(msgLoginFailed, nil)
	}
	return identity.Claim(), nil
}

// Login verifies credentials and issues a token for the resulting Claim.
func (s *Service) Login(ctx context.Context, userID, password string) (string, error) {
	claim, err := s.VerifyCredentials(ctx, userID, password)
	if err != nil {
		return "", err
	}
	token, err := s.issuer.Issue(claim)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "token issued", "userID", claim.UserID, "isAdministrator", claim.IsAdministrator)
	return token, nil
}

// burnComparison runs one comparison against a dummy hash. The hash is built
// detached from the request so a cancelled caller cannot leave it unset, and a
// failed build is retried on the next call.
func (s *Service) burnComparison(ctx context.Context, password string) {
	s.dummyMu.Lock()
	if s.dummyHash == "" {
		hash, err := s.hasher.Hash(context.WithoutCancel(ctx), "not-a-real-password")
		if err != nil {
			slog.WarnContext(ctx, "failed to build dummy password hash", "error", err)
		} else {
			s.dummyHash = hash
		}
	}
	hash := s.dummyHash
	s.dummyMu.Unlock()

	if hash != "" {
		_, _ = s.hasher.Verify(ctx, password, hash)
	}
}
