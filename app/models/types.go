package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AnonymousAuthor is stored whenever a submission carries no author name.
const AnonymousAuthor = "Anonymous"

// Blog represents an anonymous blog post with its replies.
type Blog struct {
	ID        string    `json:"id" validate:"required"`
	Title     string    `json:"title" validate:"required,max=200"`
	Content   string    `json:"content" validate:"required,max=5000"`
	Author    string    `json:"author" validate:"max=50"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	Replies   []*Reply  `json:"replies,omitempty" validate:"-"`
}

// Reply represents a comment attached to a single blog post.
// Replies have no identity of their own; they live and die with the post.
type Reply struct {
	Content   string    `json:"content" validate:"required,max=1000"`
	Author    string    `json:"author" validate:"max=50"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}
