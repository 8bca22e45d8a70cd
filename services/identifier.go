package services

import "github.com/google/uuid"

// NewIdentifier returns a globally unique opaque ID for projects, sections
// and items.
func NewIdentifier() string {
	return uuid.NewString()
}
