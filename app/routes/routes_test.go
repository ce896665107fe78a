package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"textify/app/controllers"
	"textify/app/middleware"
	"textify/app/models"
	"textify/app/repositories"
	"textify/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	handler http.Handler
	repo    *repositories.BadgerBlogRepository
}

func setupTestServer(t *testing.T, rateMax int) *testServer {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repositories.NewBadgerBlogRepository(db, 0)
	blogService := services.NewBlogService(repo)
	logger := zap.NewNop()

	limiter := middleware.NewRateLimiter(15*time.Minute, rateMax)
	handler := Setup(Controllers{
		Blog:   controllers.NewBlogController(blogService, logger),
		Text:   controllers.NewTextController(nil, logger),
		Health: controllers.NewHealthController(),
	}, limiter, []string{"http://localhost:3000"}, logger)

	return &testServer{handler: handler, repo: repo}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) seed(t *testing.T, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		blog := &models.Blog{
			Title:     fmt.Sprintf("post %d", i),
			Content:   "content",
			Author:    "Anonymous",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, ts.repo.Create(blog))
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t, 100)

	rec := ts.do(t, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateBlogEndpoint(t *testing.T) {
	ts := setupTestServer(t, 100)

	rec := ts.do(t, "POST", "/api/blogs", map[string]string{
		"title":   "Hello",
		"content": "World",
		"author":  "",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string       `json:"message"`
		Blog    *models.Blog `json:"blog"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Blog post created successfully", body.Message)
	require.NotNil(t, body.Blog)
	assert.NotEmpty(t, body.Blog.ID)
	assert.Equal(t, "Hello", body.Blog.Title)
	assert.Equal(t, "World", body.Blog.Content)
	assert.Equal(t, "Anonymous", body.Blog.Author)
	assert.False(t, body.Blog.CreatedAt.IsZero())
}

func TestCreateBlogValidationEndpoint(t *testing.T) {
	ts := setupTestServer(t, 100)

	tests := []struct {
		name    string
		payload map[string]string
		wantMsg string
	}{
		{
			name:    "missing fields",
			payload: map[string]string{"title": "", "content": ""},
			wantMsg: "Title and content are required",
		},
		{
			name:    "title too long",
			payload: map[string]string{"title": strings.Repeat("a", 201), "content": "x"},
			wantMsg: "Title must be less than 200 characters",
		},
		{
			name:    "content too long",
			payload: map[string]string{"title": "x", "content": strings.Repeat("a", 5001)},
			wantMsg: "Content must be less than 5000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, "POST", "/api/blogs", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}

	// No rejected creation wrote anything.
	count, err := ts.repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestListBlogsEndpoint(t *testing.T) {
	ts := setupTestServer(t, 100)
	ts.seed(t, 15)

	rec := ts.do(t, "GET", "/api/blogs?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page services.BlogPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Blogs, 5)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 15, page.Total)
}

func TestListBlogsCoercion(t *testing.T) {
	ts := setupTestServer(t, 100)
	ts.seed(t, 3)

	// Non-numeric values fall back to the defaults.
	rec := ts.do(t, "GET", "/api/blogs?page=abc&limit=xyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page services.BlogPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Blogs, 3)

	// Out-of-range pages come back empty, echoing the requested page.
	rec = ts.do(t, "GET", "/api/blogs?page=9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Blogs)
	assert.Equal(t, 9, page.CurrentPage)
}

func TestListBlogsIdempotent(t *testing.T) {
	ts := setupTestServer(t, 100)
	ts.seed(t, 5)

	first := ts.do(t, "GET", "/api/blogs", nil)
	second := ts.do(t, "GET", "/api/blogs", nil)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestReplyEndpoints(t *testing.T) {
	ts := setupTestServer(t, 100)

	blog := &models.Blog{Title: "Hello", Content: "World", Author: "Anonymous"}
	require.NoError(t, ts.repo.Create(blog))

	rec := ts.do(t, "POST", "/api/blogs/"+blog.ID+"/replies", map[string]string{
		"content": "Nice post",
		"author":  "",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Message string        `json:"message"`
		Reply   *models.Reply `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Reply added successfully", created.Message)
	require.NotNil(t, created.Reply)
	assert.Equal(t, "Nice post", created.Reply.Content)
	assert.Equal(t, "Anonymous", created.Reply.Author)

	rec = ts.do(t, "POST", "/api/blogs/"+blog.ID+"/replies", map[string]string{
		"content": "Second reply",
		"author":  "bob",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, "GET", "/api/blogs/"+blog.ID+"/replies", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Replies []*models.Reply `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Replies, 2)
	assert.Equal(t, "Nice post", listed.Replies[0].Content)
	assert.Equal(t, "Second reply", listed.Replies[1].Content)
}

func TestReplyToMissingBlog(t *testing.T) {
	ts := setupTestServer(t, 100)

	rec := ts.do(t, "POST", "/api/blogs/no-such-id/replies", map[string]string{
		"content": "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Blog post not found", body["error"])

	rec = ts.do(t, "GET", "/api/blogs/no-such-id/replies", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReplyValidationEndpoint(t *testing.T) {
	ts := setupTestServer(t, 100)

	blog := &models.Blog{Title: "Hello", Content: "World", Author: "Anonymous"}
	require.NoError(t, ts.repo.Create(blog))

	rec := ts.do(t, "POST", "/api/blogs/"+blog.ID+"/replies", map[string]string{
		"content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The reply sequence is unchanged.
	got, err := ts.repo.GetByID(blog.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Replies)
}

func TestStatsEndpoint(t *testing.T) {
	ts := setupTestServer(t, 100)

	old := &models.Blog{Title: "old", Content: "c", Author: "Anonymous", CreatedAt: time.Now().Add(-48 * time.Hour)}
	recent := &models.Blog{Title: "new", Content: "c", Author: "Anonymous", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, ts.repo.Create(old))
	require.NoError(t, ts.repo.Create(recent))

	rec := ts.do(t, "GET", "/api/blogs/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats services.BlogStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Recent)
}

func TestCreateBlogRateLimited(t *testing.T) {
	ts := setupTestServer(t, 5)

	payload := map[string]string{"title": "Hello", "content": "World"}
	for i := 0; i < 5; i++ {
		rec := ts.do(t, "POST", "/api/blogs", payload)
		require.Equal(t, http.StatusCreated, rec.Code, "creation %d should pass", i+1)
	}

	rec := ts.do(t, "POST", "/api/blogs", payload)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, middleware.RateLimitMessage, body["error"])

	// Reads are never rate limited.
	rec = ts.do(t, "GET", "/api/blogs", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownAPIPathReturnsJSON(t *testing.T) {
	ts := setupTestServer(t, 100)

	rec := ts.do(t, "GET", "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestAIEndpointsUnconfigured(t *testing.T) {
	ts := setupTestServer(t, 100)

	rec := ts.do(t, "POST", "/api/ai/grammar", map[string]string{"text": "he go"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(t, "POST", "/api/ai/translate", map[string]string{"text": "hi", "target": "es"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t, 100)

	req := httptest.NewRequest("OPTIONS", "/api/blogs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	// Origins off the allow-list get no CORS headers.
	req = httptest.NewRequest("OPTIONS", "/api/blogs", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
