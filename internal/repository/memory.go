package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/utils"
)

// MemoryStore keeps users in process memory. The existence check and the
// insert happen under one lock, so duplicate emails cannot slip through a
// check-then-insert window.
type MemoryStore struct {
	mu      sync.Mutex
	byEmail map[string]model.User
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]model.User), nextID: 1}
}

func (s *MemoryStore) Create(ctx context.Context, in model.InsertUser, bcryptCost int) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// Hash outside the lock; bcrypt is deliberately slow.
	hash, err := utils.HashPassword(in.Password, bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return model.User{}, ErrEmailExists
	}
	u := model.User{ID: s.nextID, Email: email, Password: hash, Name: in.Name}
	s.nextID++
	s.byEmail[email] = u
	return u, nil
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail[email]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}
