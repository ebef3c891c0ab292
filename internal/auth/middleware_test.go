package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/entities"
)

func whoamiHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":        GetUserID(c),
		"username":  GetUsername(c),
		"role":      GetUserRole(c),
		"auth_type": GetAuthType(c),
	})
}

func TestMiddleware_NoAuthMode(t *testing.T) {
	svc, _, _ := setupTestService(t, config.AuthModeNone)
	m := NewMiddleware(svc, nil, testAuthConfig(config.AuthModeNone))

	router := gin.New()
	router.Use(m.Handler())
	router.GET("/api/me", m.RequireAuth(), whoamiHandler)
	router.GET("/api/admin", m.RequireAdmin(), whoamiHandler)

	local, err := svc.LocalUser(context.Background())
	require.NoError(t, err)

	for _, path := range []string{"/api/me", "/api/admin"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Body.String(), `"username":"local"`)
		assert.Contains(t, rr.Body.String(), `"auth_type":"none"`)
	}
	assert.True(t, local.IsAdmin())
}

func TestMiddleware_LocalMode(t *testing.T) {
	svc, _, db := setupTestService(t, config.AuthModeLocal)
	sm := setupSessionManager(t, db)
	m := NewMiddleware(svc, sm, testAuthConfig(config.AuthModeLocal))

	member, err := svc.CreateUser(context.Background(), "reader", "", testPassword, entities.UserRoleMember)
	require.NoError(t, err)

	router := gin.New()
	router.Use(sm.SessionLoadSave(), m.Handler())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/me", m.RequireAuth(), whoamiHandler)
	router.GET("/api/admin", m.RequireAdmin(), whoamiHandler)

	t.Run("public path passes without session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("api path without session is 401", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"authentication required"}`, rr.Body.String())
	})

	loginRouter := gin.New()
	loginRouter.Use(sm.SessionLoadSave())
	loginRouter.POST("/login", func(c *gin.Context) {
		_ = sm.CreateSession(c.Request, member)
		c.Status(http.StatusNoContent)
	})
	rr := httptest.NewRecorder()
	loginRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookie := sessionCookie(t, rr)
	require.NotNil(t, cookie)

	t.Run("session resolves the user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"username":"reader"`)
		assert.Contains(t, rr.Body.String(), `"auth_type":"session"`)
	})

	t.Run("members cannot reach admin routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestContextGetters_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Zero(t, GetUserID(c))
	assert.Empty(t, GetUsername(c))
	assert.Empty(t, GetUserRole(c))
	assert.Equal(t, AuthTypeNone, GetAuthType(c))
	assert.Empty(t, GetCSRFToken(c))
}
