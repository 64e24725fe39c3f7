// Package repository persists user records. Two backends implement the
// same interface: an in-memory map (the default for this demo) and MySQL.
// Sentinel errors let handlers pick the HTTP status without inspecting
// strings.
package repository

import (
	"context"
	"errors"

	"github.com/agrovista/smart-farm-api/internal/model"
)

// ErrEmailExists is returned by Create when the email is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned by lookups that match no user.
var ErrNotFound = errors.New("user not found")

// UserStore creates and looks up users. Create must be an atomic
// insert-if-absent keyed by the normalized email: two concurrent
// registrations for the same address yield exactly one user and one
// ErrEmailExists. Passwords are bcrypt-hashed before they reach storage.
type UserStore interface {
	Create(ctx context.Context, in model.InsertUser, bcryptCost int) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
}
