// Package errs defines the error shapes the LightBnB API returns to clients.
//
// Every failed request is rendered as an HTTPError so clients always get the
// same JSON structure: a machine-readable code, a message, the HTTP status and,
// for validation failures, a list of field-level errors.
package errs
