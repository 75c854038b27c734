// Package model holds the LightBnB records shared by the repository,
// service and handler layers.
package model
