package repository

import (
	"fmt"
	"strings"
)

// DefaultLimit caps result sets when no positive limit is supplied.
const DefaultLimit = 10

// PropertyFilter narrows a property search. A nil field is not filtered on;
// a non-nil zero is a real bound.
type PropertyFilter struct {
	OwnerID              *int
	MinimumPricePerNight *int
	MaximumPricePerNight *int
	MinimumRating        *float64
}

// propertyFields is the column order shared by every property SELECT,
// RETURNING clause and scan.
var propertyFields = []string{
	"id",
	"owner_id",
	"title",
	"description",
	"thumbnail_photo_url",
	"cover_photo_url",
	"cost_per_night",
	"parking_spaces",
	"number_of_bathrooms",
	"number_of_bedrooms",
	"country",
	"street",
	"city",
	"province",
	"post_code",
	"active",
}

func qualify(table string, fields []string) string {
	qualified := make([]string, len(fields))
	for i, f := range fields {
		qualified[i] = table + "." + f
	}
	return strings.Join(qualified, ", ")
}

var propertySearchBase = "SELECT " + qualify("properties", propertyFields) +
	", AVG(property_reviews.rating)::float8 AS average_rating" +
	" FROM properties" +
	" LEFT JOIN property_reviews ON property_reviews.property_id = properties.id"

// averageRating is evaluated per property inside WHERE, where the joined
// aggregate is not yet available.
const averageRating = "(SELECT AVG(r.rating) FROM property_reviews r WHERE r.property_id = properties.id)"

// propertyQuery accumulates predicates and their positional arguments.
// Placeholder $n always refers to args[n-1].
type propertyQuery struct {
	conditions []string
	args       []any
}

func (q *propertyQuery) bind(arg any) string {
	q.args = append(q.args, arg)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *propertyQuery) addCondition(format string, arg any) {
	q.conditions = append(q.conditions, fmt.Sprintf(format, q.bind(arg)))
}

// BuildPropertySearch renders the property search statement and its arguments.
//
// Filters are applied in a fixed order (owner, minimum price, maximum price,
// minimum rating) so placeholder numbering depends only on which filters are
// present. The limit is always the last argument.
func BuildPropertySearch(filter PropertyFilter, limit int) (string, []any) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := &propertyQuery{args: make([]any, 0, 5)}

	if filter.OwnerID != nil {
		q.addCondition("properties.owner_id = %s", *filter.OwnerID)
	}
	if filter.MinimumPricePerNight != nil {
		q.addCondition("properties.cost_per_night >= %s", *filter.MinimumPricePerNight)
	}
	if filter.MaximumPricePerNight != nil {
		q.addCondition("properties.cost_per_night <= %s", *filter.MaximumPricePerNight)
	}
	if filter.MinimumRating != nil {
		q.addCondition(averageRating+" >= %s", *filter.MinimumRating)
	}

	var sb strings.Builder
	sb.WriteString(propertySearchBase)
	if len(q.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}

	limitPlaceholder := q.bind(limit)
	sb.WriteString(" GROUP BY properties.id ORDER BY properties.cost_per_night LIMIT ")
	sb.WriteString(limitPlaceholder)

	return sb.String(), q.args
}
