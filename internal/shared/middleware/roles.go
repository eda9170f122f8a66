package middleware

import (
	"github.com/gin-gonic/gin"

	"pharmacy-backend/internal/shared/response"
)

// RequireRoles restricts a route to the given roles. Must run after
// AuthMiddleware, which sets the role claim on the context.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		roleValue, exists := c.Get(CtxRole)
		if !exists {
			response.Forbidden(c, "access denied: missing role")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			response.Forbidden(c, "access denied: invalid role")
			c.Abort()
			return
		}

		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, "access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSelfOrRoles allows the resource owner (path param userId matches
// the authenticated user) or any of the given roles.
func RequireSelfOrRoles(param string, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if id, ok := UserID(c); ok && c.Param(param) == id.String() {
			c.Next()
			return
		}

		if role, ok := c.Get(CtxRole); ok {
			if roleStr, isStr := role.(string); isStr {
				if _, permitted := allowed[roleStr]; permitted {
					c.Next()
					return
				}
			}
		}

		response.Forbidden(c, "access denied")
		c.Abort()
	}
}
