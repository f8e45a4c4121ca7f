package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/models"
	"github.com/research-editing-site/internal/service"
)

// AdminHandler serves the CMS surface: the dashboard page and the JSON CRUD
// endpoints the admin UI calls. The route guard has already rejected
// unauthenticated requests by the time these run.
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// Dashboard renders the admin landing page.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	postCount, _ := h.services.Post.Count(ctx)
	userCount, _ := h.services.User.Count(ctx)

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"SiteTitle": "Admin",
		"PostCount": postCount,
		"UserCount": userCount,
	})
}

// ListPosts handles GET /admin/api/posts. Drafts are included; the admin
// surface is the one place they are visible.
func (h *AdminHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := h.services.Post.List(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("List posts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page, "limit": limit})
}

// GetPost handles GET /admin/api/posts/:id
func (h *AdminHandler) GetPost(c *gin.Context) {
	post, err := h.services.Post.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Get post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost handles POST /admin/api/posts
func (h *AdminHandler) CreatePost(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, errs, err := h.services.Post.Create(c.Request.Context(), &in)
	if err != nil {
		h.log.Error().Err(err).Msg("Create post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /admin/api/posts/:id
func (h *AdminHandler) UpdatePost(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, errs, err := h.services.Post.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		h.log.Error().Err(err).Msg("Update post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /admin/api/posts/:id
func (h *AdminHandler) DeletePost(c *gin.Context) {
	if err := h.services.Post.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers handles GET /admin/api/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("List users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser handles POST /admin/api/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, errs, err := h.services.User.Create(c.Request.Context(), &in)
	if err != nil {
		h.log.Error().Err(err).Msg("Create user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /admin/api/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, errs, err := h.services.User.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		h.log.Error().Err(err).Msg("Update user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/api/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.services.User.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSettings handles GET /admin/api/settings. First read on an empty
// table seeds the defaults.
func (h *AdminHandler) ListSettings(c *gin.Context) {
	settings, err := h.services.Setting.All(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("List settings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSetting handles PUT /admin/api/settings/:key. Values are strings
// regardless of logical type.
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var in struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	setting, errs, err := h.services.Setting.Update(c.Request.Context(), c.Param("key"), in.Value)
	if err != nil {
		h.log.Error().Err(err).Msg("Update setting failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update setting"})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	if setting == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found"})
		return
	}
	c.JSON(http.StatusOK, setting)
}
