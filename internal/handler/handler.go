// Package handler is the HTTP entry point for LightBnB business logic.
//
// Handlers bind and validate requests with the validation package, call the
// service layer and render its results. Every route goes through the shared
// pipeline in base.go, which adds logging and New Relic attributes.
package handler
