package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"templatehub/internal/domain/operator"
	"templatehub/internal/pkg/cookie"
	"templatehub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxOperatorIDKey   = "operator_id"
	ctxOperatorRoleKey = "operator_role"
)

var roleHierarchy = map[operator.Role]int{
	operator.RoleViewer:   1,
	operator.RoleOperator: 2,
	operator.RoleAdmin:    3,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		operatorID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxOperatorIDKey, operatorID)
		c.Set(ctxOperatorRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"operator_id": operatorID.String(),
			"role":        string(role),
		})
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole operator.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetOperatorRole(c)
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

func hasMinimumRole(role, minRole operator.Role) bool {
	roleLevel, roleExists := roleHierarchy[role]
	minLevel, minExists := roleHierarchy[minRole]
	return roleExists && minExists && roleLevel >= minLevel
}

func GetOperatorID(c *gin.Context) (uuid.UUID, bool) {
	operatorID, exists := c.Get(ctxOperatorIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := operatorID.(uuid.UUID)
	return id, ok
}

func GetOperatorRole(c *gin.Context) (operator.Role, bool) {
	role, exists := c.Get(ctxOperatorRoleKey)
	if !exists {
		return "", false
	}

	r, ok := role.(operator.Role)
	return r, ok
}
