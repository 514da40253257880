package applications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internship-backend/internal/shared/server/middleware"
	"internship-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the applications service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/applications")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/analytics", h.analytics)
	g.GET("/insights", h.insights)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{Status: Status(c.Query("status"))}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.Limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.Offset = parsed
		}
	}

	apps, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), filter)
	if err != nil {
		writeError(c, err, "failed to list applications")
		return
	}
	respond.OK(c, gin.H{"items": apps})
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", nil)
		return
	}
	app, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create application")
		return
	}
	c.Set("applicationId", app.ID)
	respond.Created(c, app)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	app, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch application")
		return
	}
	respond.OK(c, app)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", nil)
		return
	}
	app, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update application")
		return
	}
	respond.OK(c, app)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete application")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) analytics(c *gin.Context) {
	out, err := h.Svc.Analytics(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to compute analytics")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) insights(c *gin.Context) {
	out, err := h.Svc.Insights(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to compute insights")
		return
	}
	respond.OK(c, gin.H{"items": out})
}

func writeError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid application", verr.Fields)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
