package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/utils"
)

// low cost keeps bcrypt fast in tests
const testCost = 4

func TestMemoryStoreCreateAndLookup(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u, err := s.Create(ctx, model.InsertUser{Email: "Farmer@Example.com", Password: "pw", Name: "John"}, testCost)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "farmer@example.com", u.Email, "email is normalized")
	assert.True(t, utils.VerifyPassword(u.Password, "pw"), "password stored hashed")
	assert.NotEqual(t, "pw", u.Password)

	byEmail, err := s.GetByEmail(ctx, "farmer@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	_, err = s.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Create(ctx, model.InsertUser{Email: "a@b.c", Password: "pw"}, testCost)
	require.NoError(t, err)
	_, err = s.Create(ctx, model.InsertUser{Email: "A@B.C", Password: "other"}, testCost)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestMemoryStoreConcurrentRegistration(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(ctx, model.InsertUser{Email: "race@example.com", Password: "pw"}, testCost)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.True(t, errors.Is(err, ErrEmailExists), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created, "exactly one registration may win")
}
