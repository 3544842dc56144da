package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/presentation/http/dto/request"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles email/password sign-in
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh handles exchanging a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", tokens)
}

// Profile handles retrieving the authenticated account
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", user)
}

// GoogleLogin redirects to the Google consent screen
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	// The state value round-trips through Google and is verified on callback
	state := uuid.New().String()
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)

	url, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the Google sign-in flow
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		response.Unauthorized(c, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Missing authorization code")
		return
	}

	user, tokens, err := h.authService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}
