// Package auth, as part of the authentication module.
// This file, `token.go`, issues and verifies the HS256 bearer tokens that carry a Claim.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/degreeportal-go/apperror"
)

// TokenLifetime is the fixed validity window of an issued token.
const TokenLifetime = 3600 * time.Second

// Client-facing messages of the token checks.
const (
	msgExpiredOrInvalid = "Expired or invalid token"
	msgInvalidPayload   = "Invalid token payload"
)

// tokenClaims is the JWT payload: {"userID","isAdministrator","iat","exp"}.
type tokenClaims struct {
	UserID          string `json:"userID"`
	IsAdministrator bool   `json:"isAdministrator"`
	jwt.RegisteredClaims
}

// TokenOption customizes an issuer or authenticator.
type TokenOption func(*tokenConfig)

type tokenConfig struct {
	now func() time.Time
}

// WithClock replaces time.Now. Tests use it to move across the expiry boundary.
func WithClock(now func() time.Time) TokenOption {
	return func(c *tokenConfig) { c.now = now }
}

func newTokenConfig(opts []TokenOption) tokenConfig {
	c := tokenConfig{now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// TokenIssuer signs claims into compact JWTs.
type TokenIssuer struct {
	secret []byte
	cfg    tokenConfig
}

// NewTokenIssuer returns an issuer bound to the shared signing secret.
func NewTokenIssuer(secret string, opts ...TokenOption) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), cfg: newTokenConfig(opts)}
}

// Issue signs claim with iat = now and exp = now + TokenLifetime.
// An empty secret is a deployment error, never a client error.
func (i *TokenIssuer) Issue(claim Claim) (string, error) {
	if len(i.secret) == 0 {
		return "", apperror.NewConfigError("token signing secret is not configured", nil)
	}
	now := i.cfg.now()
	claims := tokenClaims{
		UserID:          claim.UserID,
		IsAdministrator: claim.IsAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperror.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// TokenAuthenticator verifies bearer tokens and recovers their Claim.
type TokenAuthenticator struct {
	secret []byte
	cfg    tokenConfig
	parser *jwt.Parser
}

// NewTokenAuthenticator returns an authenticator bound to the shared signing secret.
func NewTokenAuthenticator(secret string, opts ...TokenOption) *TokenAuthenticator {
	cfg := newTokenConfig(opts)
	return &TokenAuthenticator{
		secret: []byte(secret),
		cfg:    cfg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(cfg.now),
		),
	}
}

// Authenticate verifies token and returns its Claim.
//
// Errors:
//   - ConfigError when the secret is empty
//   - UnauthorizedError "Expired or invalid token" for a bad signature, bad algorithm or expiry
//   - UnauthorizedError "Invalid token payload" when the signature holds but the payload is not a Claim
func (a *TokenAuthenticator) Authenticate(token string) (Claim, error) {
	if len(a.secret) == 0 {
		return Claim{}, apperror.NewConfigError("token signing secret is not configured", nil)
	}

	claims := &tokenClaims{}
	_, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		// A payload that does not decode (or lacks exp) under a valid signature is a
		// payload problem, not a forgery.
		if (errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrTokenRequiredClaimMissing)) &&
			a.signatureValid(token) {
			return Claim{}, apperror.NewUnauthorizedError(msgInvalidPayload, err)
		}
		return Claim{}, apperror.NewUnauthorizedError(msgExpiredOrInvalid, err)
	}
	if claims.UserID == "" {
		return Claim{}, apperror.NewUnauthorizedError(msgInvalidPayload, nil)
	}
	return Claim{UserID: claims.UserID, IsAdministrator: claims.IsAdministrator}, nil
}

func (a *TokenAuthenticator) signatureValid(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	sig, err := a.parser.DecodeSegment(parts[2])
	if err != nil {
		return false
	}
	return jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, a.secret) == nil
}
