package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"concierge/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func named(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func testBundle() *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		Decide:            named("decide"),
		Book:              named("book"),
		BookBatch:         named("batch"),
		CheckAvailability: named("availability"),
		SearchVenues:      named("venues"),
		Health:            named("health"),
		Metrics:           handlers.MetricsHandler(),
	}
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, testBundle())

	tests := []struct {
		method, path, want string
	}{
		{http.MethodPost, "/api/decide", "decide"},
		{http.MethodPost, "/api/book", "book"},
		{http.MethodPost, "/api/book/batch", "batch"},
		{http.MethodGet, "/api/availability", "availability"},
		{http.MethodGet, "/api/venues", "venues"},
		{http.MethodGet, "/health", "health"},
	}
	for _, tc := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Equal(t, tc.want, w.Body.String(), tc.path)
	}
}

func TestMetricsAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, testBundle())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	req := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	req.Header.Set("Origin", "https://app.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
