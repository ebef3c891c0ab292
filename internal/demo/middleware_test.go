package demo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.Handler())
	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"demo": IsDemoMode(c)})
	}
	router.GET("/api/books", ok)
	router.POST("/api/my/books", ok)
	router.PATCH("/api/my/books/:id", ok)
	router.DELETE("/api/admin/books/:id", ok)
	router.POST("/login", ok)
	router.POST("/logout", ok)
	router.POST("/setup", ok)
	router.POST("/loginx", ok)
	return router
}

func TestMiddleware(t *testing.T) {
	router := newRouter(NewMiddleware(true))

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/api/books", http.StatusOK},
		{http.MethodPost, "/api/my/books", http.StatusForbidden},
		{http.MethodPatch, "/api/my/books/1", http.StatusForbidden},
		{http.MethodDelete, "/api/admin/books/1", http.StatusForbidden},
		{http.MethodPost, "/login", http.StatusOK},
		{http.MethodPost, "/logout", http.StatusOK},
		{http.MethodPost, "/setup", http.StatusForbidden},
		{http.MethodPost, "/loginx", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), `"demo_mode":true`)
			} else {
				assert.JSONEq(t, `{"demo":true}`, w.Body.String())
			}
		})
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	m := NewMiddleware(false)
	assert.False(t, m.IsEnabled())
	router := newRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/books/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"demo":false}`, w.Body.String())
}
