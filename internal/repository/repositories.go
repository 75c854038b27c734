package repository

// Repositories groups every repository built over one store client.
type Repositories struct {
	Users        *UserRepository
	Properties   *PropertyRepository
	Reservations *ReservationRepository
}

// NewRepositories builds all repositories over db, typically the application's pgx pool.
func NewRepositories(db Querier) (*Repositories, error) {
	users, err := NewUserRepository(db)
	if err != nil {
		return nil, err
	}
	properties, err := NewPropertyRepository(db)
	if err != nil {
		return nil, err
	}
	reservations, err := NewReservationRepository(db)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Users:        users,
		Properties:   properties,
		Reservations: reservations,
	}, nil
}
