// Package auth, as part of the authentication module.
// This file, `models.go`, defines the entities of the authentication domain:
// the persisted Identity and the Claim embedded in bearer tokens.
package auth

// Identity represents one registered principal.
// UserID is the primary key; it is case-sensitive and never changes after creation.
// The `json:"-"` tag keeps PasswordHash out of every API response.
type Identity struct {
	UserID          string `json:"userID"`
	PasswordHash    string `json:"-"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	IsAdministrator bool   `json:"isAdministrator"`
}

// Claim returns the authenticated fact set for this identity as of now.
func (i *Identity) Claim() Claim {
	return Claim{UserID: i.UserID, IsAdministrator: i.IsAdministrator}
}

// Claim is the minimal fact set carried by a bearer token.
// It is a value copy: later changes to the Identity do not affect an issued token.
type Claim struct {
	UserID          string `json:"userID"`
	IsAdministrator bool   `json:"isAdministrator"`
}
