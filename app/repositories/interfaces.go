package repositories

import (
	"time"

	"textify/app/models"
)

// BlogRepository defines the interface for blog post data access
type BlogRepository interface {
	Create(blog *models.Blog) error
	GetByID(id string) (*models.Blog, error)
	List(limit, offset int) ([]*models.Blog, error)
	Count() (int, error)
	CountSince(t time.Time) (int, error)
	AppendReply(id string, reply *models.Reply) error
}
