package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	marketingapp "github.com/tinymillion/backend/internal/application/marketing"
	"github.com/tinymillion/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SEOHandler serves sitemap.xml and robots.txt
type SEOHandler struct {
	seo *marketingapp.SEOService
}

// NewSEOHandler creates a new SEOHandler
func NewSEOHandler(seo *marketingapp.SEOService) *SEOHandler {
	return &SEOHandler{seo: seo}
}

// Sitemap godoc
// @ID           getSitemap
// @Summary      XML sitemap of the storefront
// @Tags         seo
// @Produce      xml
// @Success      200 {string} string "sitemap"
// @Failure      500 {string} string "Sitemap generation failed"
// @Router       /sitemap.xml [get]
func (h *SEOHandler) Sitemap(c *gin.Context) {
	xml, err := h.seo.Sitemap(c.Request.Context())
	if err != nil {
		logger.GetGinLogger(c).Error("Sitemap generation failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Sitemap generation failed")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml", []byte(xml))
}

// Robots godoc
// @ID           getRobots
// @Summary      robots.txt
// @Tags         seo
// @Produce      plain
// @Success      200 {string} string "robots"
// @Router       /robots.txt [get]
func (h *SEOHandler) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.seo.Robots()))
}
