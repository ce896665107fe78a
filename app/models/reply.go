package models

import (
	"errors"
	"strings"
	"time"
)

// Normalize trims user-supplied fields and applies the anonymous author
// default.
func (r *Reply) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.Author = strings.TrimSpace(r.Author)
	if r.Author == "" {
		r.Author = AnonymousAuthor
	}
}

// Validate checks if the reply meets all validation requirements
func (r *Reply) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (r *Reply) BeforeCreate() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
}
