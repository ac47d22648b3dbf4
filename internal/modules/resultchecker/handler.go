// Package resultchecker proxies the public result-checker endpoints to the
// external exam results provider. The backend adds the API key and relays
// upstream status codes and bodies without reinterpreting them, except for
// the report-sheet payload which some provider deployments double-encode.
package resultchecker

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/pkg/examsgate"
	"github.com/hillcrest-academy/core/internal/pkg/response"
)

type Handler struct {
	gate *examsgate.Client
}

func NewHandler(gate *examsgate.Client) *Handler {
	return &Handler{gate: gate}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/validate-student", h.ValidateStudent)
	rg.GET("/sessions/:schoolId", h.Sessions)
	rg.GET("/terms/:sessionId", h.Terms)
	rg.POST("/verify", h.Verify)
	rg.POST("/report-sheet", h.ReportSheet)
}

func (h *Handler) ValidateStudent(c *gin.Context) {
	h.forwardPost(c, "/students/validate")
}

func (h *Handler) Sessions(c *gin.Context) {
	h.forwardGet(c, "/sessions/school/"+c.Param("schoolId"))
}

func (h *Handler) Terms(c *gin.Context) {
	h.forwardGet(c, "/terms/session/"+c.Param("sessionId"))
}

func (h *Handler) Verify(c *gin.Context) {
	h.forwardPost(c, "/results/verify")
}

// ReportSheet forwards the request, then normalizes the possibly
// double-encoded report payload before relaying it.
func (h *Handler) ReportSheet(c *gin.Context) {
	payload, ok := h.readJSON(c)
	if !ok {
		return
	}

	res, err := h.gate.Post(c.Request.Context(), "/results/report-sheet", payload)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	if res.Status < 200 || res.Status >= 300 {
		c.Data(res.Status, "application/json", res.Body)
		return
	}

	report, err := examsgate.DecodeReportSheet(res.Body)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.Data(res.Status, "application/json", report)
}

func (h *Handler) forwardGet(c *gin.Context, path string) {
	res, err := h.gate.Get(c.Request.Context(), path)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.Data(res.Status, "application/json", res.Body)
}

func (h *Handler) forwardPost(c *gin.Context, path string) {
	payload, ok := h.readJSON(c)
	if !ok {
		return
	}

	res, err := h.gate.Post(c.Request.Context(), path, payload)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.Data(res.Status, "application/json", res.Body)
}

func (h *Handler) readJSON(c *gin.Context) (json.RawMessage, bool) {
	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "request body must be valid JSON")
		return nil, false
	}
	return payload, true
}

func (h *Handler) upstreamError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
		"ok":    0,
		"code":  http.StatusBadGateway,
		"error": err.Error(),
	})
}
