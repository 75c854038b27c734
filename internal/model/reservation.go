package model

import "time"

// Reservation is a guest's stay at a property. EndDate is exclusive.
type Reservation struct {
	ID         int       `json:"id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	PropertyID int       `json:"property_id"`
	GuestID    int       `json:"guest_id"`
}

// ReservationRow is a reservation joined with its property and the
// property's average rating.
type ReservationRow struct {
	Reservation   Reservation `json:"reservation"`
	Property      Property    `json:"property"`
	AverageRating *float64    `json:"average_rating"`
}
