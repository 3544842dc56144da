package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
	"github.com/latia/admin-api/pkg/utils"
)

// AdminChecker decides whether an authenticated account may use the panel
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsSuperAdmin(email string) bool
}

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// RequireAdmin only lets allow-listed accounts through. Authentication
// establishes identity; this is the authorization gate.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("user_email")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), email.(string))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !isAdmin {
			response.Forbidden(c, "This account has no admin access")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin restricts a route to the configured super admin
func RequireSuperAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("user_email")
		if !exists || !checker.IsSuperAdmin(email.(string)) {
			response.Forbidden(c, "Super admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
