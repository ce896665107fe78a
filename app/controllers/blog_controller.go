package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"textify/app/models"
	"textify/app/repositories"
	"textify/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// BlogController handles HTTP requests for blog posts and replies
type BlogController struct {
	blogService *services.BlogService
	logger      *zap.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService, logger *zap.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		logger:      logger,
	}
}

// Index handles the paginated blog listing. Non-numeric or non-positive
// page/limit values fall back to the defaults.
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	page := services.DefaultPage
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	limit := services.DefaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	result, err := bc.blogService.ListBlogs(page, limit)
	if err != nil {
		bc.serverError(w, "Failed to fetch blogs", err)
		return
	}

	bc.sendJSON(w, http.StatusOK, result)
}

// Create handles creating a new blog post
func (bc *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var blog models.Blog
	if err := json.NewDecoder(r.Body).Decode(&blog); err != nil {
		bc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := bc.blogService.CreateBlog(&blog); err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			bc.sendError(w, vErr.Message, http.StatusBadRequest)
			return
		}
		bc.serverError(w, "Failed to create blog post", err)
		return
	}

	bc.sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Blog post created successfully",
		"blog":    &blog,
	})
}

// Stats handles the aggregate counts endpoint
func (bc *BlogController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := bc.blogService.Stats(time.Now())
	if err != nil {
		bc.serverError(w, "Failed to fetch statistics", err)
		return
	}

	bc.sendJSON(w, http.StatusOK, stats)
}

// ListReplies handles listing all replies for a blog post
func (bc *BlogController) ListReplies(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	replies, err := bc.blogService.GetReplies(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			bc.sendError(w, "Blog post not found", http.StatusNotFound)
			return
		}
		bc.serverError(w, "Failed to fetch replies", err)
		return
	}

	bc.sendJSON(w, http.StatusOK, map[string]interface{}{
		"replies": replies,
	})
}

// CreateReply handles appending a reply to a blog post
func (bc *BlogController) CreateReply(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var reply models.Reply
	if err := json.NewDecoder(r.Body).Decode(&reply); err != nil {
		bc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := bc.blogService.AddReply(id, &reply); err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			bc.sendError(w, vErr.Message, http.StatusBadRequest)
		case errors.Is(err, repositories.ErrNotFound):
			bc.sendError(w, "Blog post not found", http.StatusNotFound)
		default:
			bc.serverError(w, "Failed to add reply", err)
		}
		return
	}

	bc.sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Reply added successfully",
		"reply":   &reply,
	})
}

// Helper methods for consistent response handling

func (bc *BlogController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (bc *BlogController) sendError(w http.ResponseWriter, message string, status int) {
	bc.sendJSON(w, status, map[string]string{"error": message})
}

// serverError logs the underlying fault and returns a generic message;
// the original error is never exposed beyond the details string.
func (bc *BlogController) serverError(w http.ResponseWriter, message string, err error) {
	bc.logger.Error(message, zap.Error(err))
	bc.sendJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   message,
		"details": err.Error(),
	})
}
