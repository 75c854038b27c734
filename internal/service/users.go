package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	AddUser(ctx context.Context, u model.NewUser) (*model.User, error)
}

// WelcomeQueue schedules the welcome email. *job.JobService implements it.
type WelcomeQueue interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

// Users covers user lookup and registration.
type Users struct {
	users    UserStore
	welcome  WelcomeQueue
	policy   failurePolicy
	logger   *zerolog.Logger
	hashCost int
}

func NewUsers(users UserStore, store *config.StoreConfig, logger *zerolog.Logger) *Users {
	return &Users{
		users:    users,
		policy:   failurePolicy{compat: store.CompatMode, logger: logger},
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// SetWelcomeQueue enables the welcome email on registration.
func (u *Users) SetWelcomeQueue(q WelcomeQueue) {
	u.welcome = q
}

// GetByEmail returns the user with this email, or nil.
func (u *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, u.policy.absorb(ctx, "GetUserByEmail", err)
	}
	return user, nil
}

// GetByID returns the user with this id, or nil.
func (u *Users) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := u.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, u.policy.absorb(ctx, "GetUserByID", err)
	}
	return user, nil
}

// Register stores a new user with a bcrypt-hashed password and queues the
// welcome email. A failure to queue the email does not fail registration.
func (u *Users) Register(ctx context.Context, nu model.NewUser) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), u.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errs.NewBadRequestError("Password is too long", true, nil,
				[]errs.FieldError{{Field: "password", Error: "must be at most 72 bytes"}})
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	nu.Password = string(hash)

	created, err := u.users.AddUser(ctx, nu)
	if err != nil {
		return nil, u.policy.absorb(ctx, "AddUser", err)
	}
	if created == nil {
		return nil, nil
	}

	if u.welcome != nil {
		if err := u.welcome.EnqueueWelcomeEmail(ctx, created.Email, created.Name); err != nil {
			u.logger.Warn().Err(err).Int("user_id", created.ID).Msg("failed to enqueue welcome email")
		}
	}

	return created, nil
}
