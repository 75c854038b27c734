package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/rs/zerolog"
)

type PropertyStore interface {
	GetAllProperties(ctx context.Context, filter repository.PropertyFilter, limit int) ([]model.PropertyRow, error)
	AddProperty(ctx context.Context, p model.NewProperty) (*model.Property, error)
}

type ReservationStore interface {
	GetReservationsForGuest(ctx context.Context, guestID, limit int) ([]model.ReservationRow, error)
}

// Listings covers property search, property creation and guest reservations.
type Listings struct {
	properties   PropertyStore
	reservations ReservationStore
	policy       failurePolicy
	defaultLimit int
}

func NewListings(properties PropertyStore, reservations ReservationStore, store *config.StoreConfig, logger *zerolog.Logger) *Listings {
	return &Listings{
		properties:   properties,
		reservations: reservations,
		policy:       failurePolicy{compat: store.CompatMode, logger: logger},
		defaultLimit: store.DefaultLimit,
	}
}

func (l *Listings) limit(requested int) int {
	if requested > 0 {
		return requested
	}
	return l.defaultLimit
}

// SearchProperties returns properties matching filter, cheapest first.
// A non-positive limit uses the configured default.
func (l *Listings) SearchProperties(ctx context.Context, filter repository.PropertyFilter, limit int) ([]model.PropertyRow, error) {
	rows, err := l.properties.GetAllProperties(ctx, filter, l.limit(limit))
	if err != nil {
		if err = l.policy.absorb(ctx, "GetAllProperties", err); err != nil {
			return nil, err
		}
		return []model.PropertyRow{}, nil
	}
	return rows, nil
}

// AddProperty lists a new property.
func (l *Listings) AddProperty(ctx context.Context, p model.NewProperty) (*model.Property, error) {
	created, err := l.properties.AddProperty(ctx, p)
	if err != nil {
		return nil, l.policy.absorb(ctx, "AddProperty", err)
	}
	return created, nil
}

// ReservationsForGuest returns the guest's past reservations, earliest first.
func (l *Listings) ReservationsForGuest(ctx context.Context, guestID, limit int) ([]model.ReservationRow, error) {
	rows, err := l.reservations.GetReservationsForGuest(ctx, guestID, l.limit(limit))
	if err != nil {
		if err = l.policy.absorb(ctx, "GetReservationsForGuest", err); err != nil {
			return nil, err
		}
		return []model.ReservationRow{}, nil
	}
	return rows, nil
}
