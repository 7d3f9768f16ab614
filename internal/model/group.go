package model

// GroupID uniquely identifies a permission group
type GroupID string

// RightID uniquely identifies a right within its category
type RightID string

// Right is a named permission unit belonging to a category.
// Its external slug is "<category_slug>.<slug>".
type Right struct {
	ID           RightID
	Slug         string
	CategorySlug string
}

// Group is a set of rights that can be attached to accounts.
// Groups flagged IsDefault are attached to every newly created account.
type Group struct {
	ID        GroupID
	Slug      string
	IsDefault bool
	Rights    []Right
}
