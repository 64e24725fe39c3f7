package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/utils"
)

// MySQLStore backs UserStore with the `users` table. The unique index on
// email makes Create atomic; a duplicate-key error (1062) maps to
// ErrEmailExists.
type MySQLStore struct{ DB *sql.DB }

func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{DB: db} }

func (s *MySQLStore) Create(ctx context.Context, in model.InsertUser, bcryptCost int) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := utils.HashPassword(in.Password, bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name) VALUES (?,?,?)",
		email, hash, in.Name)
	if err != nil {
		var my *mysql.MySQLError
		if errors.As(err, &my) && my.Number == 1062 {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return model.User{ID: id, Email: email, Password: hash, Name: in.Name}, nil
}

func (s *MySQLStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, name FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Password, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func (s *MySQLStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, name FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.Password, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}
