package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"textify/app/controllers"
	"textify/app/middleware"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controllers bundles the handlers the router wires up.
type Controllers struct {
	Blog   *controllers.BlogController
	Text   *controllers.TextController
	Health *controllers.HealthController
}

// Setup builds the API router: global middleware, the /api subrouter with
// JSON content type, and CORS restricted to the configured origins with
// credentials allowed.
func Setup(c Controllers, limiter *middleware.RateLimiter, allowedOrigins []string, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()

	// Apply global middleware.
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))

	// Create API subrouter with JSON content type middleware.
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.ContentTypeJSON)

	// Blog endpoints. Creation is the only rate-limited operation.
	apiBlogs := apiRouter.PathPrefix("/blogs").Subrouter()
	apiBlogs.HandleFunc("", c.Blog.Index).Methods("GET")
	apiBlogs.Handle("", limiter.Limit(http.HandlerFunc(c.Blog.Create))).Methods("POST")
	apiBlogs.HandleFunc("/stats", c.Blog.Stats).Methods("GET")
	apiBlogs.HandleFunc("/{id}/replies", c.Blog.ListReplies).Methods("GET")
	apiBlogs.HandleFunc("/{id}/replies", c.Blog.CreateReply).Methods("POST")

	// Text enhancement endpoints.
	apiText := apiRouter.PathPrefix("/ai").Subrouter()
	apiText.HandleFunc("/grammar", c.Text.CorrectGrammar).Methods("POST")
	apiText.HandleFunc("/translate", c.Text.Translate).Methods("POST")

	apiRouter.HandleFunc("/health", c.Health.Status).Methods("GET")

	// Unknown API paths answer in JSON like everything else under /api.
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(router)
}
