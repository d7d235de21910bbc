package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/usecase"
	"lab-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey  = "user_id"
	ctxUserRole   = "user_role"
	ctxUserOrgKey = "user_org"
)

var roleHierarchy = map[user.Role]int{
	user.RoleMember:   1,
	user.RoleReviewer: 2,
	user.RoleAdmin:    3,
}

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		userID, role, orgID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRole, role)
		if orgID != nil {
			c.Set(ctxUserOrgKey, *orgID)
		}
		c.Next()
	}
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRole)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

func GetUserOrg(c *gin.Context) *uuid.UUID {
	orgID, exists := c.Get(ctxUserOrgKey)
	if !exists {
		return nil
	}
	id, ok := orgID.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetActor assembles the command-layer actor from the authenticated context.
func GetActor(c *gin.Context) (commands.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return commands.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return commands.Actor{}, false
	}
	return commands.Actor{
		ID:             userID,
		Role:           role,
		OrganizationID: GetUserOrg(c),
	}, true
}
