// Package model declares the canonical record shapes shared by the contract
// layer, the store and the handlers. Field domains (required, ranges, enums)
// live here as validator tags, the single place they are stated.
package model

// User is the stored user record. Password holds a bcrypt hash; the
// cleartext never leaves the registration/login handlers.
type User struct {
	ID       int64
	Email    string
	Password string
	Name     string
}

// InsertUser is the insertable variant of User: everything except the
// generated ID. Strict decoding in the contract layer rejects a body that
// tries to supply "id".
type InsertUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest carries credentials. Username is the account email; the
// field name is kept for wire compatibility with existing clients.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the success payload for login and register. Token is a
// short-lived HS256 access token for the protected endpoints.
type AuthUser struct {
	ID    int64  `json:"id" validate:"gte=1"`
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// ErrorMessage is the single error payload shape used across all
// operations.
type ErrorMessage struct {
	Message string `json:"message" validate:"required"`
}
