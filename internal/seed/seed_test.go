package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	nextUserID int
	users      []model.NewUser
	properties []model.NewProperty
	failOn     string
}

func (r *recordingStore) AddUser(_ context.Context, u model.NewUser) (*model.User, error) {
	if u.Email == r.failOn {
		return nil, errors.New("duplicate key")
	}
	r.nextUserID++
	r.users = append(r.users, u)
	return &model.User{ID: r.nextUserID, Name: u.Name, Email: u.Email}, nil
}

func (r *recordingStore) AddProperty(_ context.Context, p model.NewProperty) (*model.Property, error) {
	r.properties = append(r.properties, p)
	return &model.Property{ID: len(r.properties), OwnerID: p.OwnerID}, nil
}

const usersDoc = `{
	"7": {"id": 7, "name": "Eva Stanley", "email": "eva@example.com", "password": "$2a$10$FB/BOAVhpuLvpOREQVmvmezD4ED/.JBIDRh70tGevYzYzQgFId2u."},
	"3": {"id": 3, "name": "Dominic Parks", "email": "dominic@example.com", "password": "$2a$10$FB/BOAVhpuLvpOREQVmvmezD4ED/.JBIDRh70tGevYzYzQgFId2u."}
}`

const propertiesDoc = `{
	"1": {
		"owner_id": 7,
		"title": "Speed lamp",
		"description": "description",
		"thumbnail_photo_url": "https://images.example.com/1/small.jpg",
		"cover_photo_url": "https://images.example.com/1/large.jpg",
		"cost_per_night": 93061,
		"street": "536 Namsub Highway",
		"city": "Sotboske",
		"province": "Quebec",
		"post_code": "28142",
		"country": "Canada",
		"parking_spaces": 6,
		"number_of_bathrooms": 4,
		"number_of_bedrooms": 8,
		"active": true
	}
}`

func newSeeder(t *testing.T, store *recordingStore) *Seeder {
	t.Helper()
	logger := zerolog.Nop()
	s, err := New(store, store, &logger)
	require.NoError(t, err)
	return s
}

func TestRun_InsertsUsersThenRemapsOwners(t *testing.T) {
	store := &recordingStore{}

	result, err := newSeeder(t, store).Run(context.Background(), []byte(usersDoc), []byte(propertiesDoc))
	require.NoError(t, err)

	assert.Equal(t, Result{Users: 2, Properties: 1}, result)
	require.Len(t, store.users, 2)
	assert.Equal(t, "dominic@example.com", store.users[0].Email)
	assert.Equal(t, "eva@example.com", store.users[1].Email)

	// document user 7 was inserted second and received id 2
	require.Len(t, store.properties, 1)
	assert.Equal(t, 2, store.properties[0].OwnerID)
	assert.Equal(t, 93061, store.properties[0].CostPerNight)
}

func TestRun_SchemaViolationInsertsNothing(t *testing.T) {
	tests := []struct {
		name       string
		users      string
		properties string
	}{
		{
			name:       "user without email",
			users:      `{"1": {"name": "A", "password": "x"}}`,
			properties: `{}`,
		},
		{
			name:       "invalid email format",
			users:      `{"1": {"name": "A", "email": "not-an-email", "password": "x"}}`,
			properties: `{}`,
		},
		{
			name:       "non numeric key",
			users:      `{"abc": {"name": "A", "email": "a@example.com", "password": "x"}}`,
			properties: `{}`,
		},
		{
			name:       "negative price",
			users:      usersDoc,
			properties: `{"1": {"owner_id": 7, "title": "t", "thumbnail_photo_url": "https://x.io/a", "cover_photo_url": "https://x.io/b", "cost_per_night": -1, "street": "s", "city": "c", "province": "p", "post_code": "1", "country": "CA", "parking_spaces": 0, "number_of_bathrooms": 0, "number_of_bedrooms": 0}}`,
		},
		{
			name:       "malformed json",
			users:      `{"1": `,
			properties: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}

			_, err := newSeeder(t, store).Run(context.Background(), []byte(tt.users), []byte(tt.properties))

			require.Error(t, err)
			assert.Empty(t, store.users)
			assert.Empty(t, store.properties)
		})
	}
}

func TestRun_StopsAtFirstStoreFailure(t *testing.T) {
	store := &recordingStore{failOn: "eva@example.com"}

	result, err := newSeeder(t, store).Run(context.Background(), []byte(usersDoc), []byte(propertiesDoc))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeding user 7")
	assert.Equal(t, Result{Users: 1}, result)
	assert.Empty(t, store.properties)
}
