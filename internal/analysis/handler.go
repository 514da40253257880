package analysis

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-backend/internal/shared/server/middleware"
	"internship-backend/internal/shared/server/respond"
)

// Handler wires the analyze endpoint to the Gateway.
type Handler struct {
	Gateway *Gateway
}

// NewHandler constructs a Handler. A nil gateway answers every call with a configuration error.
func NewHandler(g *Gateway) *Handler {
	return &Handler{Gateway: g}
}

// RegisterRoutes attaches the analyze route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-resume", h.Analyze)
	rg.OPTIONS("/analyze-resume", func(c *gin.Context) { c.Status(http.StatusOK) })
}

// Analyze dispatches to text extraction or match analysis based on the body.
func (h *Handler) Analyze(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, KindValidation.String(), "Invalid JSON body", nil)
		return
	}

	mode, err := req.Mode()
	if err != nil {
		writeError(c, AsError(err))
		return
	}
	c.Set("analysisMode", string(mode))

	if h.Gateway == nil {
		writeError(c, &Error{Kind: KindConfiguration, Op: string(mode)})
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))

	switch mode {
	case ModeExtract:
		doc, err := DecodePDF(req.PDFBase64)
		if err != nil {
			writeError(c, AsError(err))
			return
		}
		out, err := h.Gateway.ExtractText(ctx, doc)
		if err != nil {
			writeError(c, AsError(err))
			return
		}
		respond.OK(c, out)
	default:
		result, err := h.Gateway.AnalyzeMatch(ctx, req.ResumeText, req.JobDescription)
		if err != nil {
			writeError(c, AsError(err))
			return
		}
		respond.OK(c, result)
	}
}

func writeError(c *gin.Context, ae *Error) {
	respond.Error(c, ae.HTTPStatus(), ae.Kind.String(), ae.PublicMessage(), nil)
}
