package handler

import (
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users    *service.Users
	listings *service.Listings
}

func NewUserHandler(s *server.Server, users *service.Users, listings *service.Listings) *UserHandler {
	return &UserHandler{
		Handler:  NewHandler(s),
		users:    users,
		listings: listings,
	}
}

type UserResponse struct {
	User *model.User `json:"user"`
}

type RegisterUserRequest struct {
	model.NewUser
}

func (r *RegisterUserRequest) Validate() error {
	return validation.Struct(r)
}

// Register creates a user account. The password is stored hashed and a
// welcome email is queued.
func (h *UserHandler) Register(c echo.Context, req *RegisterUserRequest) (*UserResponse, error) {
	user, err := h.users.Register(c.Request().Context(), req.NewUser)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewInternalServerError()
	}
	return &UserResponse{User: user}, nil
}

type GetUserRequest struct {
	ID int `param:"id" validate:"required,gt=0"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) GetUser(c echo.Context, req *GetUserRequest) (*UserResponse, error) {
	user, err := h.users.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.EntityNotFound("user", req.ID)
	}
	return &UserResponse{User: user}, nil
}

type FindUserRequest struct {
	Email string `query:"email" validate:"required,email"`
}

func (r *FindUserRequest) Validate() error {
	return validation.Struct(r)
}

// FindUser looks a user up by exact email address.
func (h *UserHandler) FindUser(c echo.Context, req *FindUserRequest) (*UserResponse, error) {
	user, err := h.users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.EntityNotFound("user", req.Email)
	}
	return &UserResponse{User: user}, nil
}

type GuestReservationsRequest struct {
	GuestID int    `param:"id" validate:"required,gt=0"`
	Limit   string `query:"limit"`

	limit int
}

func (r *GuestReservationsRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	var p validation.QueryParser
	if limit := p.OptionalIntBetween("limit", r.Limit, 1, maxPageSize); limit != nil {
		r.limit = *limit
	}
	return p.Err()
}

type ReservationsResponse struct {
	Reservations []model.ReservationRow `json:"reservations"`
}

// GuestReservations lists the guest's completed stays, earliest first.
func (h *UserHandler) GuestReservations(c echo.Context, req *GuestReservationsRequest) (*ReservationsResponse, error) {
	rows, err := h.listings.ReservationsForGuest(c.Request().Context(), req.GuestID, req.limit)
	if err != nil {
		return nil, err
	}
	return &ReservationsResponse{Reservations: rows}, nil
}
