package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository reads a guest's reservation history.
type ReservationRepository struct {
	db Querier
}

func NewReservationRepository(db Querier) (*ReservationRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("reservation repository: querier cannot be nil")
	}
	return &ReservationRepository{db: db}, nil
}

var selectPastReservations = "SELECT reservations.id, reservations.start_date, reservations.end_date," +
	" reservations.property_id, reservations.guest_id, " +
	qualify("properties", propertyFields) +
	", AVG(property_reviews.rating)::float8 AS average_rating" +
	" FROM reservations" +
	" JOIN properties ON reservations.property_id = properties.id" +
	" LEFT JOIN property_reviews ON property_reviews.property_id = properties.id" +
	" WHERE reservations.guest_id = $1 AND reservations.end_date < now()::date" +
	" GROUP BY reservations.id, properties.id" +
	" ORDER BY reservations.start_date" +
	" LIMIT $2"

// GetReservationsForGuest returns the guest's finished stays, earliest first.
// A non-positive limit falls back to DefaultLimit.
func (r *ReservationRepository) GetReservationsForGuest(ctx context.Context, guestID, limit int) ([]model.ReservationRow, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := r.db.Query(ctx, selectPastReservations, guestID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for guest %d: %w", guestID, err)
	}

	reservations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ReservationRow, error) {
		var rr model.ReservationRow
		targets := []any{
			&rr.Reservation.ID,
			&rr.Reservation.StartDate,
			&rr.Reservation.EndDate,
			&rr.Reservation.PropertyID,
			&rr.Reservation.GuestID,
		}
		targets = append(targets, propertyScanTargets(&rr.Property)...)
		targets = append(targets, &rr.AverageRating)
		err := row.Scan(targets...)
		return rr, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations for guest %d: %w", guestID, err)
	}

	if reservations == nil {
		reservations = []model.ReservationRow{}
	}
	return reservations, nil
}
