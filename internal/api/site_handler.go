package api

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/models"
	"github.com/research-editing-site/internal/service"
)

const (
	homePostCount   = 3
	defaultPageSize = 10
)

// SiteHandler serves the public server-rendered pages. All blog reads go
// through the content repository, so a failing backing store renders empty
// lists rather than error pages.
type SiteHandler struct {
	content  *content.Repository
	settings service.SettingService
	log      zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(repo *content.Repository, settings service.SettingService, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		content:  repo,
		settings: settings,
		log:      log.With().Str("handler", "site").Logger(),
	}
}

// siteMeta loads display settings with hard fallbacks, so pages still
// render when the settings table is unreachable.
func (h *SiteHandler) siteMeta(c *gin.Context) map[string]string {
	meta := make(map[string]string, len(models.DefaultSettings))
	for _, s := range models.DefaultSettings {
		meta[s.Key] = s.Value
	}

	stored, err := h.settings.All(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Settings unavailable, using defaults")
		return meta
	}
	for _, s := range stored {
		meta[s.Key] = s.Value
	}
	return meta
}

func (h *SiteHandler) pageSize(meta map[string]string) int {
	if n, err := strconv.Atoi(meta["posts_per_page"]); err == nil && n > 0 {
		return n
	}
	return defaultPageSize
}

// Home renders the landing page with the most recent posts.
func (h *SiteHandler) Home(c *gin.Context) {
	meta := h.siteMeta(c)
	posts := h.content.GetLatestPosts(c.Request.Context(), homePostCount)
	c.HTML(http.StatusOK, "home.html", gin.H{
		"SiteTitle": meta["site_title"],
		"Posts":     posts,
	})
}

// About renders the about page.
func (h *SiteHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{"SiteTitle": h.siteMeta(c)["site_title"]})
}

// Services renders the services page.
func (h *SiteHandler) Services(c *gin.Context) {
	c.HTML(http.StatusOK, "services.html", gin.H{"SiteTitle": h.siteMeta(c)["site_title"]})
}

// CaseStudies renders the case studies page.
func (h *SiteHandler) CaseStudies(c *gin.Context) {
	c.HTML(http.StatusOK, "case_studies.html", gin.H{"SiteTitle": h.siteMeta(c)["site_title"]})
}

// Contact renders the contact page.
func (h *SiteHandler) Contact(c *gin.Context) {
	meta := h.siteMeta(c)
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"SiteTitle":    meta["site_title"],
		"ContactEmail": meta["contact_email"],
	})
}

// BlogIndex renders the paginated blog listing. Page numbers below 1 are
// clamped by the content repository.
func (h *SiteHandler) BlogIndex(c *gin.Context) {
	meta := h.siteMeta(c)
	limit := h.pageSize(meta)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	posts := h.content.GetPostsPage(c.Request.Context(), page, limit)

	var prev, next int
	if page > 1 {
		prev = page - 1
	}
	if len(posts) == limit {
		next = page + 1
	}

	c.HTML(http.StatusOK, "blog_index.html", gin.H{
		"SiteTitle": meta["site_title"],
		"Posts":     posts,
		"PrevPage":  prev,
		"NextPage":  next,
	})
}

// BlogPost renders a single post. The body is sanitized here, on the render
// path, regardless of what was stored.
func (h *SiteHandler) BlogPost(c *gin.Context) {
	post := h.content.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if post == nil {
		h.NotFound(c)
		return
	}

	c.HTML(http.StatusOK, "blog_post.html", gin.H{
		"SiteTitle": h.siteMeta(c)["site_title"],
		"Post":      post,
		"Body":      template.HTML(content.Sanitize(post.Content)),
	})
}

// NotFound renders the site's standard not-found page.
func (h *SiteHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"SiteTitle": h.siteMeta(c)["site_title"],
	})
}
