// Package auth, as part of the authentication module.
// This file, `context.go`, carries the request Subject through context.Context.
package auth

import (
	"context"
)

// `contextKey` is a custom type for context keys. Using a custom type prevents collisions
// with context keys defined in other packages.
type contextKey string

const subjectContextKey contextKey = "auth_subject"

// Subject is who is making a request: either Anonymous or Authenticated.
// The unexported method closes the set.
type Subject interface {
	isSubject()
}

// Anonymous is a request without a verified token.
type Anonymous struct{}

// Authenticated is a request whose bearer token verified to Claim.
type Authenticated struct {
	Claim Claim
}

func (Anonymous) isSubject()     {}
func (Authenticated) isSubject() {}

// NewContextWithSubject returns a child context carrying s.
func NewContextWithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectContextKey, s)
}

// SubjectFromContext returns the Subject stored by the token middleware, or Anonymous.
func SubjectFromContext(ctx context.Context) Subject {
	if s, ok := ctx.Value(subjectContextKey).(Subject); ok && s != nil {
		return s
	}
	return Anonymous{}
}

// ClaimFromContext returns the caller's Claim if the request is authenticated.
func ClaimFromContext(ctx context.Context) (Claim, bool) {
	if s, ok := SubjectFromContext(ctx).(Authenticated); ok {
		return s.Claim, true
	}
	return Claim{}, false
}
