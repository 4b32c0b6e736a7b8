package domain

import "github.com/google/uuid"

// Category is one spending category owned by a user. Within one user's
// Category subcollection, the normalized name is unique; duplicate names are
// reconciled to the existing id, never stored twice.
type Category struct {
	CategoryID   string `json:"category_id" firestore:"category_id"`
	CategoryName string `json:"category_name" firestore:"category_name"`
}

// NewCategory builds a category with a normalized display name. The id is
// left empty when unknown; reconciliation assigns it before persistence.
func NewCategory(id, name string) Category {
	return Category{
		CategoryID:   id,
		CategoryName: CapitalizeName(name),
	}
}

// Normalize re-applies the display-name normalization. Needed after decoding
// from request payloads or store reads, where the raw string is copied in.
func (c *Category) Normalize() {
	c.CategoryName = CapitalizeName(c.CategoryName)
}

// EnsureID mints a fresh id when the category does not have one yet.
func (c *Category) EnsureID() {
	if c.CategoryID == "" {
		c.CategoryID = uuid.NewString()
	}
}

// Key returns the case/whitespace-insensitive comparison key for the name.
func (c Category) Key() string {
	return CategoryKey(c.CategoryName)
}
