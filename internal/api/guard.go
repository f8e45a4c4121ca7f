package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Admin route layout the guard enforces.
const (
	adminRoot = "/admin"
	loginPath = "/admin/login"
)

// sessionUserKey is the session field holding the authenticated user id.
const sessionUserKey = "user_id"

// Authenticator reports whether the current request carries a valid admin
// identity. It is the only auth state the route guard consults.
type Authenticator interface {
	Authenticated(c *gin.Context) bool
}

// RouteGuard intercepts every request before any handler runs:
// unauthenticated traffic under /admin (except the login path) is redirected
// to the login page, and authenticated traffic hitting the login page is
// redirected to the admin root. Everything else passes through unchanged.
// The decision is stateless per request.
func RouteGuard(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		switch {
		case isAdminPath(path) && path != loginPath && !auth.Authenticated(c):
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
		case path == loginPath && auth.Authenticated(c):
			c.Redirect(http.StatusFound, adminRoot)
			c.Abort()
		default:
			c.Next()
		}
	}
}

func isAdminPath(path string) bool {
	return path == adminRoot || strings.HasPrefix(path, adminRoot+"/")
}

// SessionAuth derives the auth decision from the request's cookie session.
type SessionAuth struct{}

// Authenticated reports whether the session carries a user id.
func (SessionAuth) Authenticated(c *gin.Context) bool {
	return sessions.Default(c).Get(sessionUserKey) != nil
}
