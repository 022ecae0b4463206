// Package users, as part of the identity management module.
// This file, `dto.go`, defines the request bodies of the users endpoints.
package users

// CreateUserRequest is the body of POST /api/users and POST /api/publicUsers.
type CreateUserRequest struct {
	UserID          string `json:"userID" validate:"required,max=64" example:"alice"`
	Password        string `json:"password" validate:"required,max=72" example:"pw1"`
	FirstName       string `json:"firstName" validate:"max=128" example:"Alice"`
	LastName        string `json:"lastName" validate:"max=128" example:"Liddell"`
	IsAdministrator bool   `json:"isAdministrator" example:"false"`
}

// UpdateUserRequest is the body of PUT /api/users/{userID}.
// Pointer fields tell "absent" apart from "set to the zero value".
// UserID is accepted only so that a change attempt can be rejected.
type UpdateUserRequest struct {
	UserID          *string `json:"userID,omitempty"`
	Password        *string `json:"password,omitempty" validate:"omitempty,max=72"`
	FirstName       *string `json:"firstName,omitempty" validate:"omitempty,max=128"`
	LastName        *string `json:"lastName,omitempty" validate:"omitempty,max=128"`
	IsAdministrator *bool   `json:"isAdministrator,omitempty"`
}
