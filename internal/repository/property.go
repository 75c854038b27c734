package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// PropertyRepository searches and inserts properties.
type PropertyRepository struct {
	db Querier
}

func NewPropertyRepository(db Querier) (*PropertyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("property repository: querier cannot be nil")
	}
	return &PropertyRepository{db: db}, nil
}

// propertyScanTargets returns destinations in propertyFields order.
func propertyScanTargets(p *model.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Country,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Active,
	}
}

// GetAllProperties returns properties matching filter, cheapest first,
// with at most limit rows. An empty result is a non-nil empty slice.
func (r *PropertyRepository) GetAllProperties(ctx context.Context, filter PropertyFilter, limit int) ([]model.PropertyRow, error) {
	log := zerolog.Ctx(ctx).With().
		Str("component", "PropertyRepository").
		Str("method", "GetAllProperties").
		Logger()

	query, args := BuildPropertySearch(filter, limit)
	log.Debug().Int("params", len(args)).Msg("searching properties")

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}

	properties, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PropertyRow, error) {
		var p model.PropertyRow
		err := row.Scan(append(propertyScanTargets(&p.Property), &p.AverageRating)...)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}

	if properties == nil {
		properties = []model.PropertyRow{}
	}
	return properties, nil
}

// insertProperty lists the accepted columns in bind order.
var insertProperty = fmt.Sprintf(
	"INSERT INTO properties (%s) VALUES (%s) RETURNING %s",
	"owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night, "+
		"street, city, province, post_code, country, parking_spaces, number_of_bathrooms, number_of_bedrooms",
	placeholders(14),
	strings.Join(propertyFields, ", "),
)

func placeholders(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(p, ", ")
}

// AddProperty inserts a listing and returns the stored record.
func (r *PropertyRepository) AddProperty(ctx context.Context, p model.NewProperty) (*model.Property, error) {
	var created model.Property
	err := r.db.QueryRow(ctx, insertProperty,
		p.OwnerID,
		p.Title,
		p.Description,
		p.ThumbnailPhotoURL,
		p.CoverPhotoURL,
		p.CostPerNight,
		p.Street,
		p.City,
		p.Province,
		p.PostCode,
		p.Country,
		p.ParkingSpaces,
		p.NumberOfBathrooms,
		p.NumberOfBedrooms,
	).Scan(propertyScanTargets(&created)...)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("component", "PropertyRepository").
			Int("owner_id", p.OwnerID).
			Msg("failed to add property")
		return nil, fmt.Errorf("failed to add property: %w", err)
	}

	return &created, nil
}
