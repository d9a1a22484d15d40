package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/modules/members"
)

const ctxKeyMember = "current_member"

// RequireAuth validates the bearer token and stashes the claims on the context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authz, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		claims, err := members.ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "invalid or expired token",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set(ctxKeyMember, claims)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Runs after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentMember(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":      "forbidden",
			"request_id": GetRequestID(c),
		})
	}
}

func CurrentMember(c *gin.Context) (*members.Claims, bool) {
	v, ok := c.Get(ctxKeyMember)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*members.Claims)
	return claims, ok
}
