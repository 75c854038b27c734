package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// UserRepository reads and inserts users.
type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) (*UserRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("user repository: querier cannot be nil")
	}
	return &UserRepository{db: db}, nil
}

const (
	selectUserByEmail = `SELECT id, name, email, password FROM users WHERE email = $1`
	selectUserByID    = `SELECT id, name, email, password FROM users WHERE id = $1`
	insertUser        = `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, name, email, password`
)

func (r *UserRepository) getOne(ctx context.Context, method, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			zerolog.Ctx(ctx).Debug().
				Str("component", "UserRepository").
				Str("method", method).
				Msg("user not found")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail returns the user with exactly this email, or nil.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "GetUserByEmail", selectUserByEmail, email)
}

// GetUserByID returns the user with this id, or nil.
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, "GetUserByID", selectUserByID, id)
}

// AddUser inserts u as given. Hashing the password is the caller's job.
func (r *UserRepository) AddUser(ctx context.Context, u model.NewUser) (*model.User, error) {
	var created model.User
	err := r.db.QueryRow(ctx, insertUser, u.Name, u.Email, u.Password).
		Scan(&created.ID, &created.Name, &created.Email, &created.Password)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("component", "UserRepository").
			Str("method", "AddUser").
			Msg("failed to add user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}
