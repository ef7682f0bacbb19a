package domain

import (
	"errors"
	"strings"
	"time"
)

// Collection-specific validation errors
var (
	// ErrCollectionNameEmpty is returned when a collection's name is empty.
	ErrCollectionNameEmpty = errors.New("collection name cannot be empty")
)

// Collection is a named, user-curated deck of words. Names are unique;
// creating a collection whose name already exists is a silent no-op at the
// store layer.
type Collection struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewCollection creates a Collection with the given name and description.
// Returns an error if validation fails.
func NewCollection(name, description string) (*Collection, error) {
	collection := &Collection{
		Name:        strings.TrimSpace(name),
		Description: description,
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks if the Collection has valid data.
func (c *Collection) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCollectionNameEmpty
	}

	return nil
}

// CollectionWord is the many-to-many membership link between a Collection and
// a Word. Rows are created when a word is linked into a collection and removed
// only by cascade when either side is deleted.
type CollectionWord struct {
	ID           int64     `json:"id"`
	CollectionID int64     `json:"collection_id"`
	WordID       int64     `json:"word_id"`
	AddedAt      time.Time `json:"added_at"`
}
