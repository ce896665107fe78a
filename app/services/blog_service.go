package services

import (
	"fmt"
	"time"

	"textify/app/models"
	"textify/app/repositories"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	maxTitleLen   = 200
	maxContentLen = 5000
	maxAuthorLen  = 50
	maxReplyLen   = 1000
)

// BlogPage is one page of the blog listing.
type BlogPage struct {
	Blogs       []*models.Blog `json:"blogs"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	Total       int            `json:"total"`
}

// BlogStats holds the aggregate counts served by the stats endpoint.
type BlogStats struct {
	Total  int `json:"total"`
	Recent int `json:"recent"`
}

// BlogService handles business logic for blog posts and replies
type BlogService struct {
	blogRepo repositories.BlogRepository
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo repositories.BlogRepository) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
	}
}

// CreateBlog validates and persists a new blog post. The repository
// assigns the ID and creation time.
func (s *BlogService) CreateBlog(blog *models.Blog) error {
	blog.Normalize()

	if err := validateBlog(blog); err != nil {
		return err
	}

	return s.blogRepo.Create(blog)
}

// ListBlogs retrieves a page of blog posts sorted newest first. Pages
// beyond the end return an empty page that still echoes the requested
// page number.
func (s *BlogService) ListBlogs(page, limit int) (*BlogPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	offset := (page - 1) * limit
	blogs, err := s.blogRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*models.Blog{}
	}

	total, err := s.blogRepo.Count()
	if err != nil {
		return nil, err
	}

	return &BlogPage{
		Blogs:       blogs,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		Total:       total,
	}, nil
}

// GetReplies retrieves all replies for a blog post in submission order.
func (s *BlogService) GetReplies(id string) ([]*models.Reply, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if blog.Replies == nil {
		return []*models.Reply{}, nil
	}
	return blog.Replies, nil
}

// AddReply validates a reply and appends it to the blog post.
func (s *BlogService) AddReply(id string, reply *models.Reply) error {
	reply.Normalize()

	if err := validateReply(reply); err != nil {
		return err
	}

	// Verify the blog exists before stamping, so a missing post surfaces
	// as not-found rather than a write failure.
	if _, err := s.blogRepo.GetByID(id); err != nil {
		return err
	}

	reply.BeforeCreate()
	return s.blogRepo.AppendReply(id, reply)
}

// Stats computes the aggregate counts for the stats endpoint. Recent
// covers the 24 hours up to now.
func (s *BlogService) Stats(now time.Time) (*BlogStats, error) {
	total, err := s.blogRepo.Count()
	if err != nil {
		return nil, err
	}

	recent, err := s.blogRepo.CountSince(now.Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}

	return &BlogStats{Total: total, Recent: recent}, nil
}

// validateBlog validates a blog post's fields in the order the API
// reports them: presence first, then lengths.
func validateBlog(blog *models.Blog) error {
	if blog.Title == "" || blog.Content == "" {
		return validationError("Title and content are required")
	}
	if len(blog.Title) > maxTitleLen {
		return validationError(fmt.Sprintf("Title must be less than %d characters", maxTitleLen))
	}
	if len(blog.Content) > maxContentLen {
		return validationError(fmt.Sprintf("Content must be less than %d characters", maxContentLen))
	}
	if len(blog.Author) > maxAuthorLen {
		return validationError(fmt.Sprintf("Author must be less than %d characters", maxAuthorLen))
	}
	return nil
}

// validateReply validates a reply's fields
func validateReply(reply *models.Reply) error {
	if reply.Content == "" {
		return validationError("Content is required")
	}
	if len(reply.Content) > maxReplyLen {
		return validationError(fmt.Sprintf("Content must be less than %d characters", maxReplyLen))
	}
	if len(reply.Author) > maxAuthorLen {
		return validationError(fmt.Sprintf("Author must be less than %d characters", maxAuthorLen))
	}
	return nil
}
