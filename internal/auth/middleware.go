package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Principal is what RequireSession needs from the request-scoped session.
type Principal interface {
	Authenticated() bool
}

// PrincipalKey is the gin context key holding the request Principal.
const PrincipalKey = "principal"

// RequireSession sends requests without an authenticated session back to the auth screen.
// HTML navigations are redirected; anything else gets a 401 JSON body.
func RequireSession(authPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(PrincipalKey)
		p, ok := v.(Principal)
		if ok && p.Authenticated() {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodGet {
			c.Redirect(http.StatusSeeOther, authPath)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
	}
}

// RequireManage rejects requests from roles without management rights.
func RequireManage(perms func(*gin.Context) Permissions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !perms(c).CanManage {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin roles.
func RequireAdmin(perms func(*gin.Context) Permissions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !perms(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}
