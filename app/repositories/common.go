package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// Key prefix for blog post documents
	BlogKeyPrefix = "blog:"
)

var (
	ErrNotFound = errors.New("record not found")
)

// blogKey builds the storage key for a blog post ID.
func blogKey(id string) []byte {
	return []byte(BlogKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
