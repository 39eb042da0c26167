package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindfulware/therabot/internal/domain"
	"github.com/mindfulware/therabot/internal/service"
)

// Handler handles authentication API requests
type Handler struct {
	authService *service.AuthService
}

// NewHandler creates a new auth handler
func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{authService: authService}
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

// Signup creates an account and starts a session
func (h *Handler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user and starts a session
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the current session
func (h *Handler) Logout(c *gin.Context) {
	token := ""
	if cookie, err := c.Cookie("session_token"); err == nil {
		token = cookie
	}
	if token != "" {
		_ = h.authService.Logout(c.Request.Context(), token)
	}

	c.SetCookie("session_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func setSessionCookie(c *gin.Context, token string) {
	// 30 days, httpOnly; Secure is left to the deployment's TLS proxy.
	c.SetCookie("session_token", token, 30*24*3600, "/", "", false, true)
}
