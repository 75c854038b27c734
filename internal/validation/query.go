package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// QueryParser converts optional query string values into typed pointers.
// An empty value yields nil; a malformed or out of range value is recorded.
type QueryParser struct {
	problems CustomValidationErrors
}

// OptionalInt parses raw as an integer no smaller than min.
func (p *QueryParser) OptionalInt(field, raw string, min int) *int {
	return p.OptionalIntBetween(field, raw, min, math.MaxInt)
}

// OptionalIntBetween parses raw as an integer within [min, max].
func (p *QueryParser) OptionalIntBetween(field, raw string, min, max int) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		p.add(field, "must be a whole number")
		return nil
	}
	if v < min {
		p.add(field, fmt.Sprintf("must be at least %d", min))
		return nil
	}
	if v > max {
		p.add(field, fmt.Sprintf("must not exceed %d", max))
		return nil
	}
	return &v
}

// OptionalFloat parses raw as a number within [min, max].
func (p *QueryParser) OptionalFloat(field, raw string, min, max float64) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.add(field, "must be a number")
		return nil
	}
	if v < min || v > max {
		p.add(field, fmt.Sprintf("must be between %g and %g", min, max))
		return nil
	}
	return &v
}

func (p *QueryParser) add(field, message string) {
	p.problems = append(p.problems, CustomValidationError{Field: field, Message: message})
}

// Err returns the recorded problems, or nil when every value parsed.
func (p *QueryParser) Err() error {
	if len(p.problems) == 0 {
		return nil
	}
	return p.problems
}
