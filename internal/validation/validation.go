// Package validation binds request data and reports validation failures
// as field-level errors the client can act on.
//
// Struct rules come from go-playground/validator tags; rules that tags
// cannot express (optional numeric query parameters, for instance) are
// reported as CustomValidationErrors.
package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the tag rules of v. It is the usual body of a Validate method.
func Struct(v any) error {
	return validate.Struct(v)
}
