package models

import (
	"errors"
	"strings"
	"time"
)

// Normalize trims user-supplied fields and applies the anonymous author
// default. It must run before validation so that length checks see the
// stored form of each field.
func (b *Blog) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Content = strings.TrimSpace(b.Content)
	b.Author = strings.TrimSpace(b.Author)
	if b.Author == "" {
		b.Author = AnonymousAuthor
	}
}

// Validate checks if the blog meets all validation requirements
func (b *Blog) Validate() error {
	if err := validate.Struct(b); err != nil {
		return err
	}

	if b.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (b *Blog) BeforeCreate() {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
}

// AddReply appends a reply to the blog. Replies are append-only and keep
// submission order.
func (b *Blog) AddReply(reply *Reply) error {
	if reply == nil {
		return errors.New("reply cannot be nil")
	}

	b.Replies = append(b.Replies, reply)
	return nil
}
