// Package seed loads the legacy LightBnB JSON documents (users.json and
// properties.json) into the database.
//
// Both documents are objects keyed by record id. They are validated against
// embedded JSON Schemas before anything is written; a document that fails
// validation inserts nothing.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

type UserWriter interface {
	AddUser(ctx context.Context, u model.NewUser) (*model.User, error)
}

type PropertyWriter interface {
	AddProperty(ctx context.Context, p model.NewProperty) (*model.Property, error)
}

// Result counts inserted records.
type Result struct {
	Users      int
	Properties int
}

// Seeder inserts users first, then properties. Document owner ids are
// rewritten to the ids the database assigned to the corresponding users.
type Seeder struct {
	users      UserWriter
	properties PropertyWriter
	logger     *zerolog.Logger
	schemas    map[string]*jsonschema.Schema
}

func New(users UserWriter, properties PropertyWriter, logger *zerolog.Logger) (*Seeder, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Seeder{
		users:      users,
		properties: properties,
		logger:     logger,
		schemas:    schemas,
	}, nil
}

type legacyUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type legacyProperty struct {
	model.NewProperty
}

type keyed[T any] struct {
	id     int
	record T
}

// Run validates both documents and inserts their records in ascending id order.
// Passwords are stored as written; the legacy documents already carry hashes.
func (s *Seeder) Run(ctx context.Context, usersJSON, propertiesJSON []byte) (Result, error) {
	var result Result

	if err := validateDocument(s.schemas[usersSchema], usersJSON); err != nil {
		return result, fmt.Errorf("users document: %w", err)
	}
	if err := validateDocument(s.schemas[propertiesSchema], propertiesJSON); err != nil {
		return result, fmt.Errorf("properties document: %w", err)
	}

	users, err := decodeKeyed[legacyUser](usersJSON)
	if err != nil {
		return result, fmt.Errorf("users document: %w", err)
	}
	properties, err := decodeKeyed[legacyProperty](propertiesJSON)
	if err != nil {
		return result, fmt.Errorf("properties document: %w", err)
	}

	assigned := make(map[int]int, len(users))
	for _, u := range users {
		created, err := s.users.AddUser(ctx, model.NewUser{
			Name:     u.record.Name,
			Email:    u.record.Email,
			Password: u.record.Password,
		})
		if err != nil {
			return result, fmt.Errorf("seeding user %d: %w", u.id, err)
		}
		assigned[u.id] = created.ID
		result.Users++
	}

	for _, p := range properties {
		np := p.record.NewProperty
		if id, ok := assigned[np.OwnerID]; ok {
			np.OwnerID = id
		}
		if _, err := s.properties.AddProperty(ctx, np); err != nil {
			return result, fmt.Errorf("seeding property %d: %w", p.id, err)
		}
		result.Properties++
	}

	s.logger.Info().
		Int("users", result.Users).
		Int("properties", result.Properties).
		Msg("seed data loaded")

	return result, nil
}

func decodeKeyed[T any](raw []byte) ([]keyed[T], error) {
	var byID map[string]T
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, err
	}

	records := make([]keyed[T], 0, len(byID))
	for key, record := range byID {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("record key %q is not an id", key)
		}
		records = append(records, keyed[T]{id: id, record: record})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].id < records[j].id })
	return records, nil
}
