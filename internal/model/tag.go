package model

import "time"

// Tag is a free-standing label with no relations to other entities.
type Tag struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the tag has been soft-deleted.
func (t *Tag) Deleted() bool {
	return t.DeletedAt != nil
}
