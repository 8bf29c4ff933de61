package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// Handler handles HTTP requests for the portal.
type Handler struct {
	ports Ports
}

// NewHandler creates a new HTTP handler.
func NewHandler(ports Ports) (*Handler, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	return &Handler{ports: ports}, nil
}

// RegisterRoutes registers all routes.
// stats and news/latest share the /:type/:id route and are dispatched in GetItem.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.GET("/search", h.Search)
		api.GET("/:type", h.List)
		api.GET("/:type/:id", h.GetItem)
		api.DELETE("/cache/:namespace", h.InvalidateCache)
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	success(c, gin.H{"status": "ok"})
}

// Search handles unified search across content domains.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	opts, err := req.Options()
	if err != nil {
		failWith(c, err)
		return
	}

	result, err := h.ports.Unified.Search(c.Request.Context(), req.Query, opts)
	if err != nil {
		failWith(c, err)
		return
	}
	success(c, result)
}

// List handles one domain listing.
func (h *Handler) List(c *gin.Context) {
	t, ok := contentType(c)
	if !ok {
		return
	}

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	filters, err := req.Filters()
	if err != nil {
		failWith(c, err)
		return
	}

	result, err := h.ports.Catalog.List(c.Request.Context(), t, filters, req.Pagination())
	if err != nil {
		failWith(c, err)
		return
	}
	success(c, result)
}

// GetItem handles /:type/:id, including the stats and news/latest routes.
func (h *Handler) GetItem(c *gin.Context) {
	t, ok := contentType(c)
	if !ok {
		return
	}
	id := c.Param("id")

	switch {
	case id == "stats":
		h.stats(c, t)
		return
	case id == "latest" && t == domain.ContentTypeNews:
		h.latest(c)
		return
	}

	record, found, err := h.ports.Catalog.Get(c.Request.Context(), t, id)
	if err != nil {
		failWith(c, err)
		return
	}
	if !found {
		notFound(c, fmt.Sprintf("%s %q not found", t, id))
		return
	}
	success(c, record)
}

func (h *Handler) stats(c *gin.Context, t domain.ContentType) {
	result, err := h.ports.Catalog.Stats(c.Request.Context(), t)
	if err != nil {
		failWith(c, err)
		return
	}
	success(c, result)
}

func (h *Handler) latest(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}

	items, err := h.ports.Catalog.Latest(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		failWith(c, err)
		return
	}
	success(c, items)
}

// InvalidateCache drops cached entries of a namespace matching ?pattern=.
func (h *Handler) InvalidateCache(c *gin.Context) {
	if h.ports.Cache == nil {
		notFound(c, "cache administration is disabled")
		return
	}

	namespace := c.Param("namespace")
	pattern := c.Query("pattern")
	n, err := h.ports.Cache.Invalidate(c.Request.Context(), namespace, pattern)
	if err != nil {
		failWith(c, err)
		return
	}

	requestLogger(c).Info().Str("namespace", namespace).Str("pattern", pattern).Int("deleted", n).Msg("cache invalidated")
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"namespace": namespace, "pattern": pattern, "deleted": n},
	})
}

// contentType parses the :type parameter, answering 400 when it is unknown.
func contentType(c *gin.Context) (domain.ContentType, bool) {
	t, err := domain.ParseContentType(c.Param("type"))
	if err != nil {
		failWith(c, err)
		return "", false
	}
	return t, true
}
