package repository

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

func placeholderNumbers(query string) []int {
	var numbers []int
	for _, m := range placeholderPattern.FindAllStringSubmatch(query, -1) {
		n, _ := strconv.Atoi(m[1])
		numbers = append(numbers, n)
	}
	return numbers
}

func TestBuildPropertySearch_NoFilters(t *testing.T) {
	query, args := BuildPropertySearch(PropertyFilter{}, 0)

	assert.NotContains(t, query, "WHERE")
	assert.Equal(t, []any{DefaultLimit}, args)
	assert.True(t, strings.HasSuffix(query, "GROUP BY properties.id ORDER BY properties.cost_per_night LIMIT $1"))
	assert.True(t, strings.HasPrefix(query, "SELECT properties.id, properties.owner_id, properties.title"))
	assert.Contains(t, query, "LEFT JOIN property_reviews ON property_reviews.property_id = properties.id")
}

func TestBuildPropertySearch_SingleFilter(t *testing.T) {
	tests := []struct {
		name      string
		filter    PropertyFilter
		predicate string
		value     any
	}{
		{"owner", PropertyFilter{OwnerID: intPtr(3)}, "properties.owner_id = $1", 3},
		{"minimum price", PropertyFilter{MinimumPricePerNight: intPtr(5000)}, "properties.cost_per_night >= $1", 5000},
		{"maximum price", PropertyFilter{MaximumPricePerNight: intPtr(20000)}, "properties.cost_per_night <= $1", 20000},
		{"minimum rating", PropertyFilter{MinimumRating: floatPtr(3.5)}, averageRating + " >= $1", 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := BuildPropertySearch(tt.filter, 7)

			assert.Contains(t, query, " WHERE "+tt.predicate+" GROUP BY")
			assert.NotContains(t, query, " AND ")
			assert.Equal(t, []any{tt.value, 7}, args)
			assert.True(t, strings.HasSuffix(query, "LIMIT $2"))
		})
	}
}

func TestBuildPropertySearch_MaxPriceAndRating(t *testing.T) {
	query, args := BuildPropertySearch(PropertyFilter{
		MinimumRating:        floatPtr(4),
		MaximumPricePerNight: intPtr(200),
	}, 5)

	want := propertySearchBase +
		" WHERE properties.cost_per_night <= $1 AND " + averageRating + " >= $2" +
		" GROUP BY properties.id ORDER BY properties.cost_per_night LIMIT $3"

	assert.Equal(t, want, query)
	assert.Equal(t, []any{200, 4.0, 5}, args)
}

func TestBuildPropertySearch_AllFiltersInFixedOrder(t *testing.T) {
	query, args := BuildPropertySearch(PropertyFilter{
		OwnerID:              intPtr(1),
		MinimumPricePerNight: intPtr(100),
		MaximumPricePerNight: intPtr(900),
		MinimumRating:        floatPtr(2),
	}, 20)

	owner := strings.Index(query, "properties.owner_id = $1")
	minPrice := strings.Index(query, "properties.cost_per_night >= $2")
	maxPrice := strings.Index(query, "properties.cost_per_night <= $3")
	rating := strings.Index(query, averageRating+" >= $4")

	assert.Greater(t, owner, 0)
	assert.Greater(t, minPrice, owner)
	assert.Greater(t, maxPrice, minPrice)
	assert.Greater(t, rating, maxPrice)
	assert.Equal(t, []any{1, 100, 900, 2.0, 20}, args)
	assert.True(t, strings.HasSuffix(query, "LIMIT $5"))
}

func TestBuildPropertySearch_ZeroIsAFilter(t *testing.T) {
	query, args := BuildPropertySearch(PropertyFilter{
		MinimumPricePerNight: intPtr(0),
		MinimumRating:        floatPtr(0),
	}, 10)

	assert.Contains(t, query, "properties.cost_per_night >= $1")
	assert.Contains(t, query, averageRating+" >= $2")
	assert.Equal(t, []any{0, 0.0, 10}, args)
}

func TestBuildPropertySearch_NegativeLimitUsesDefault(t *testing.T) {
	_, args := BuildPropertySearch(PropertyFilter{}, -3)

	assert.Equal(t, []any{DefaultLimit}, args)
}

func TestBuildPropertySearch_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var filter PropertyFilter
		present := 0
		if rapid.Bool().Draw(t, "has_owner") {
			filter.OwnerID = intPtr(rapid.IntRange(0, 10_000).Draw(t, "owner_id"))
			present++
		}
		if rapid.Bool().Draw(t, "has_min_price") {
			filter.MinimumPricePerNight = intPtr(rapid.IntRange(0, 1_000_000).Draw(t, "min_price"))
			present++
		}
		if rapid.Bool().Draw(t, "has_max_price") {
			filter.MaximumPricePerNight = intPtr(rapid.IntRange(0, 1_000_000).Draw(t, "max_price"))
			present++
		}
		if rapid.Bool().Draw(t, "has_min_rating") {
			filter.MinimumRating = floatPtr(rapid.Float64Range(0, 5).Draw(t, "min_rating"))
			present++
		}
		limit := rapid.IntRange(-10, 500).Draw(t, "limit")

		query, args := BuildPropertySearch(filter, limit)

		if len(args) != present+1 {
			t.Fatalf("got %d args for %d filters", len(args), present)
		}

		numbers := placeholderNumbers(query)
		if len(numbers) != len(args) {
			t.Fatalf("query references %d placeholders, %d args bound: %s", len(numbers), len(args), query)
		}
		for i, n := range numbers {
			if n != i+1 {
				t.Fatalf("placeholder %d is $%d, want $%d", i, n, i+1)
			}
		}

		if present == 0 && strings.Contains(query, "WHERE") {
			t.Fatalf("unexpected WHERE clause: %s", query)
		}
		if got := strings.Count(query, " AND "); present > 0 && got != present-1 {
			t.Fatalf("got %d AND joins for %d predicates", got, present)
		}

		wantLimit := limit
		if wantLimit <= 0 {
			wantLimit = DefaultLimit
		}
		if args[len(args)-1] != wantLimit {
			t.Fatalf("last arg %v, want limit %d", args[len(args)-1], wantLimit)
		}
	})
}
