package auth

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/forms"
)

// setupMutex serializes setup requests so only one first admin is created.
var setupMutex sync.Mutex

// AuthController serves the login, logout, setup and "who am I" endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, rateLimiter *RateLimiter) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes mounts the session endpoints. Me is registered by the
// caller under the authenticated API group.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	router.GET("/login", ac.LoginInfo)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.POST("/setup", ac.Setup)
}

type userResponse struct {
	ID        uint              `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email,omitempty"`
	Role      entities.UserRole `json:"role"`
	AuthMode  string            `json:"auth_mode"`
	CSRFToken string            `json:"csrf_token,omitempty"`
}

func (ac *AuthController) respondUser(c *gin.Context, status int, user *entities.User) {
	c.JSON(status, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		AuthMode:  string(ac.service.Mode()),
		CSRFToken: GetCSRFToken(c),
	})
}

func bindValid(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := forms.Validate(dst); err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": verr.Fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// LoginInfo hands out the CSRF token needed for the login and setup posts
// and tells the client whether setup is still pending.
func (ac *AuthController) LoginInfo(c *gin.Context) {
	hasUsers, err := ac.service.HasUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token":     GetCSRFToken(c),
		"setup_required": !hasUsers,
		"authenticated":  ac.sessionManager.IsAuthenticated(c.Request),
	})
}

// Login authenticates the user and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	var in forms.LoginInput
	if !bindValid(c, &in) {
		return
	}
	clientIP := c.ClientIP()

	if ac.rateLimiter != nil {
		if allowed, retryAfter := ac.rateLimiter.Allow(clientIP, in.Username); !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many login attempts",
				"retry_after": retryAfter.String(),
			})
			return
		}
	}

	user, err := ac.service.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if ac.rateLimiter != nil {
			ac.rateLimiter.RecordFailure(clientIP, in.Username)
		}
		log.Info().Str("username", in.Username).Str("ip", clientIP).Msg("Login failed")

		msg := "invalid username or password"
		if errors.Is(err, ErrAccountLocked) {
			msg = "account is locked, try again later"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, in.Username)
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	ac.respondUser(c, http.StatusOK, user)
}

// Logout destroys the current session.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Warn().Err(err).Msg("Failed to destroy session")
	}
	c.Status(http.StatusNoContent)
}

// Setup creates the first admin account. It is refused once any account
// exists.
func (ac *AuthController) Setup(c *gin.Context) {
	var in forms.SetupInput
	if !bindValid(c, &in) {
		return
	}

	setupMutex.Lock()
	defer setupMutex.Unlock()

	hasUsers, err := ac.service.HasUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing users"})
		return
	}
	if hasUsers {
		c.JSON(http.StatusConflict, gin.H{"error": "setup already completed"})
		return
	}

	user, err := ac.service.CreateUser(c.Request.Context(), in.Username, in.Email, in.Password, entities.UserRoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordTooLong),
			errors.Is(err, ErrUsernameInvalid), errors.Is(err, ErrEmailInvalid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Msg("Setup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Warn().Err(err).Msg("Failed to create session after setup")
	}
	ac.respondUser(c, http.StatusCreated, user)
}

// Me returns the acting user.
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.service.GetUserByID(c.Request.Context(), GetUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	ac.respondUser(c, http.StatusOK, user)
}
