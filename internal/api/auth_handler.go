package api

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/service"
)

// AuthHandler serves the admin login and logout endpoints. The route guard
// keeps authenticated users away from the login page and everyone else away
// from the rest of /admin, so these handlers only deal with the transition.
type AuthHandler struct {
	auth service.AuthService
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log.With().Str("handler", "auth").Logger(),
	}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"SiteTitle": "Admin"})
}

// Login verifies the submitted credentials and starts a session. The same
// generic failure message covers unknown emails and wrong passwords.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.auth.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		h.log.Error().Err(err).Msg("Login check failed")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"SiteTitle": "Admin",
			"Error":     "Something went wrong, try again",
		})
		return
	}
	if user == nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"SiteTitle": "Admin",
			"Error":     "Invalid email or password",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		h.log.Error().Err(err).Msg("Session save failed")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"SiteTitle": "Admin",
			"Error":     "Something went wrong, try again",
		})
		return
	}

	h.log.Info().Str("user_id", user.ID).Msg("Admin signed in")
	c.Redirect(http.StatusFound, adminRoot)
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.log.Error().Err(err).Msg("Session clear failed")
	}
	c.Redirect(http.StatusFound, loginPath)
}
