package model

import "time"

// Category groups products. It is a pure domain model with no
// database-specific dependencies or tags, usable across layers
// (HTTP, service, repository) without coupling to persistence.
type Category struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the category has been soft-deleted.
// Default repository queries already exclude such rows; this is for
// callers that hold a record loaded outside those queries.
func (c *Category) Deleted() bool {
	return c.DeletedAt != nil
}
