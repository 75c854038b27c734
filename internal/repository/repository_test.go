package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var userColumns = []string{"id", "name", "email", "password"}

func propertyRowValues(id, cost int) []any {
	return []any{
		id, 2, "Blank corner", "description", "https://images.example/thumb.jpg",
		"https://images.example/cover.jpg", cost, 6, 4, 8, "Canada",
		"651 Nami Road", "Bohbatev", "Alberta", "83680", true,
	}
}

func TestNewRepositories_RejectsNilQuerier(t *testing.T) {
	_, err := NewRepositories(nil)
	require.Error(t, err)
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	mock := newMock(t)
	repo, err := NewUserRepository(mock)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WithArgs("tristanjacobs@gmail.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(1, "Devin Sanders", "tristanjacobs@gmail.com", "$2a$10$hash"))

	user, err := repo.GetUserByEmail(context.Background(), "tristanjacobs@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.User{ID: 1, Name: "Devin Sanders", Email: "tristanjacobs@gmail.com", Password: "$2a$10$hash"}, *user)
}

func TestUserRepository_GetUserByEmail_Absent(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns))

	user, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetUserByID(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByID)).
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(42, "Eva Stanley", "sebastianguerra@ymail.com", "x"))
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByID)).
		WithArgs(43).
		WillReturnError(errStoreDown)

	user, err := repo.GetUserByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, user.ID)

	user, err = repo.GetUserByID(context.Background(), 43)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestUserRepository_AddUser(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(insertUser)).
		WithArgs("A", "a@x.com", "p").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(17, "A", "a@x.com", "p"))

	user, err := repo.AddUser(context.Background(), model.NewUser{Name: "A", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, 17, user.ID)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "p", user.Password)
}

func TestUserRepository_AddUser_Failure(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(insertUser)).
		WithArgs("A", "a@x.com", "p").
		WillReturnError(errStoreDown)

	user, err := repo.AddUser(context.Background(), model.NewUser{Name: "A", Email: "a@x.com", Password: "p"})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestPropertyRepository_GetAllProperties(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewPropertyRepository(mock)

	filter := PropertyFilter{MaximumPricePerNight: intPtr(20000), MinimumRating: floatPtr(4)}
	query, _ := BuildPropertySearch(filter, 5)

	rated := 4.25
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(20000, 4.0, 5).
		WillReturnRows(pgxmock.NewRows(append(append([]string{}, propertyFields...), "average_rating")).
			AddRow(append(propertyRowValues(1, 9300), &rated)...).
			AddRow(append(propertyRowValues(2, 18000), (*float64)(nil))...))

	rows, err := repo.GetAllProperties(context.Background(), filter, 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, 9300, rows[0].CostPerNight)
	require.NotNil(t, rows[0].AverageRating)
	assert.InDelta(t, 4.25, *rows[0].AverageRating, 1e-9)

	assert.Equal(t, 2, rows[1].ID)
	assert.Nil(t, rows[1].AverageRating)
}

func TestPropertyRepository_GetAllProperties_Empty(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewPropertyRepository(mock)

	query, _ := BuildPropertySearch(PropertyFilter{OwnerID: intPtr(999)}, 0)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(999, DefaultLimit).
		WillReturnRows(pgxmock.NewRows(append(append([]string{}, propertyFields...), "average_rating")))

	rows, err := repo.GetAllProperties(context.Background(), PropertyFilter{OwnerID: intPtr(999)}, 0)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestPropertyRepository_GetAllProperties_StoreFailure(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewPropertyRepository(mock)

	query, _ := BuildPropertySearch(PropertyFilter{}, 10)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(10).
		WillReturnError(errStoreDown)

	rows, err := repo.GetAllProperties(context.Background(), PropertyFilter{}, 10)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestPropertyRepository_AddProperty(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewPropertyRepository(mock)

	np := model.NewProperty{
		OwnerID:           2,
		Title:             "Blank corner",
		Description:       "description",
		ThumbnailPhotoURL: "https://images.example/thumb.jpg",
		CoverPhotoURL:     "https://images.example/cover.jpg",
		CostPerNight:      9300,
		Street:            "651 Nami Road",
		City:              "Bohbatev",
		Province:          "Alberta",
		PostCode:          "83680",
		Country:           "Canada",
		ParkingSpaces:     6,
		NumberOfBathrooms: 4,
		NumberOfBedrooms:  8,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO properties (owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night, street, city, province, post_code, country, parking_spaces, number_of_bathrooms, number_of_bedrooms) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id,")).
		WithArgs(2, "Blank corner", "description", "https://images.example/thumb.jpg", "https://images.example/cover.jpg",
			9300, "651 Nami Road", "Bohbatev", "Alberta", "83680", "Canada", 6, 4, 8).
		WillReturnRows(pgxmock.NewRows(propertyFields).AddRow(propertyRowValues(31, 9300)...))

	created, err := repo.AddProperty(context.Background(), np)
	require.NoError(t, err)
	assert.Equal(t, 31, created.ID)
	assert.Equal(t, 2, created.OwnerID)
	assert.Equal(t, "Canada", created.Country)
	assert.True(t, created.Active)
}

func TestReservationRepository_GetReservationsForGuest(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewReservationRepository(mock)

	start := time.Date(2018, 9, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2018, 9, 26, 0, 0, 0, 0, time.UTC)
	rating := 3.5

	columns := append([]string{"id", "start_date", "end_date", "property_id", "guest_id"}, propertyFields...)
	columns = append(columns, "average_rating")

	values := append([]any{5, start, end, 1, 9}, propertyRowValues(1, 9300)...)
	values = append(values, &rating)

	mock.ExpectQuery(regexp.QuoteMeta(selectPastReservations)).
		WithArgs(9, DefaultLimit).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(values...))

	rows, err := repo.GetReservationsForGuest(context.Background(), 9, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 5, rows[0].Reservation.ID)
	assert.Equal(t, start, rows[0].Reservation.StartDate)
	assert.Equal(t, 9, rows[0].Reservation.GuestID)
	assert.Equal(t, "Blank corner", rows[0].Property.Title)
	assert.InDelta(t, 3.5, *rows[0].AverageRating, 1e-9)
}

func TestReservationRepository_StoreFailure(t *testing.T) {
	mock := newMock(t)
	repo, _ := NewReservationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(selectPastReservations)).
		WithArgs(9, 3).
		WillReturnError(errStoreDown)

	rows, err := repo.GetReservationsForGuest(context.Background(), 9, 3)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, errStoreDown)
}
