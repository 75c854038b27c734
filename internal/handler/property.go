package handler

import (
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/labstack/echo/v4"
)

// maxPageSize bounds the limit a client may request.
const maxPageSize = 100

type PropertyHandler struct {
	Handler
	listings *service.Listings
}

func NewPropertyHandler(s *server.Server, listings *service.Listings) *PropertyHandler {
	return &PropertyHandler{
		Handler:  NewHandler(s),
		listings: listings,
	}
}

// SearchPropertiesRequest holds the raw search parameters. Every filter is
// optional; a present value, zero included, constrains the result.
type SearchPropertiesRequest struct {
	OwnerID              string `query:"owner_id"`
	MinimumPricePerNight string `query:"minimum_price_per_night"`
	MaximumPricePerNight string `query:"maximum_price_per_night"`
	MinimumRating        string `query:"minimum_rating"`
	Limit                string `query:"limit"`

	filter repository.PropertyFilter
	limit  int
}

func (r *SearchPropertiesRequest) Validate() error {
	var p validation.QueryParser

	r.filter = repository.PropertyFilter{
		OwnerID:              p.OptionalInt("owner_id", r.OwnerID, 1),
		MinimumPricePerNight: p.OptionalInt("minimum_price_per_night", r.MinimumPricePerNight, 0),
		MaximumPricePerNight: p.OptionalInt("maximum_price_per_night", r.MaximumPricePerNight, 0),
		MinimumRating:        p.OptionalFloat("minimum_rating", r.MinimumRating, 0, 5),
	}

	if limit := p.OptionalIntBetween("limit", r.Limit, 1, maxPageSize); limit != nil {
		r.limit = *limit
	}

	return p.Err()
}

// Filter returns the parsed filter. Valid only after Validate succeeded.
func (r *SearchPropertiesRequest) Filter() repository.PropertyFilter {
	return r.filter
}

type PropertiesResponse struct {
	Properties []model.PropertyRow `json:"properties"`
}

// SearchProperties lists properties matching the filters, cheapest first.
// Without a limit the configured default page size applies.
func (h *PropertyHandler) SearchProperties(c echo.Context, req *SearchPropertiesRequest) (*PropertiesResponse, error) {
	rows, err := h.listings.SearchProperties(c.Request().Context(), req.Filter(), req.limit)
	if err != nil {
		return nil, err
	}
	return &PropertiesResponse{Properties: rows}, nil
}

type CreatePropertyRequest struct {
	model.NewProperty
}

func (r *CreatePropertyRequest) Validate() error {
	return validation.Struct(r)
}

type PropertyResponse struct {
	Property *model.Property `json:"property"`
}

// CreateProperty lists a new property for an existing owner.
func (h *PropertyHandler) CreateProperty(c echo.Context, req *CreatePropertyRequest) (*PropertyResponse, error) {
	created, err := h.listings.AddProperty(c.Request().Context(), req.NewProperty)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errs.NewInternalServerError()
	}
	return &PropertyResponse{Property: created}, nil
}
