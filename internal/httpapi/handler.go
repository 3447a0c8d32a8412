package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"conftrack/internal/checkin"
	"conftrack/internal/observability"
)

// Handler exposes the check-in service over HTTP. Each error class from
// the scan pipeline maps to its own status code and machine-readable
// error string so operators can tell a bad scan from an unknown badge
// from a broken store.
type Handler struct {
	svc *checkin.Service
	log *zap.Logger
}

func New(svc *checkin.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// Register wires the API routes onto r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.POST("/scan", h.Scan)
		api.GET("/users", h.ListPresent)
		api.GET("/users/all", h.ListAll)
		api.POST("/seed", h.Seed)
		api.POST("/users/:id/present", h.SetPresent)
		api.POST("/users/:id/status", h.OverrideStatus)
	}
}

func outcomeForAction(action string) string {
	switch action {
	case checkin.ActionMovedToConference:
		return observability.OutcomeConference
	case checkin.ActionCheckedOut:
		return observability.OutcomeCheckedOut
	case checkin.ActionReturned:
		return observability.OutcomeReturned
	case checkin.ActionAlreadyOut:
		return observability.OutcomeAlreadyOut
	}
	return "unknown"
}

// Scan accepts a raw barcode and runs the scan pipeline.
func (h *Handler) Scan(c *gin.Context) {
	var req struct {
		Barcode string `json:"barcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		observability.ScansTotal.WithLabelValues(observability.OutcomeInvalidInput).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "detail": "barcode required"})
		return
	}

	res, err := h.svc.Scan(c.Request.Context(), req.Barcode)
	if err != nil {
		h.scanError(c, err)
		return
	}

	observability.ScansTotal.WithLabelValues(outcomeForAction(res.Action)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"user":       res.Attendee,
		"new_status": res.NewStatus,
		"action":     res.Action,
	})
}

func (h *Handler) scanError(c *gin.Context, err error) {
	var nf *checkin.NotFoundError
	var wf *checkin.WriteFailure
	switch {
	case errors.Is(err, checkin.ErrInvalidInput):
		observability.ScansTotal.WithLabelValues(observability.OutcomeInvalidInput).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "detail": err.Error()})
	case errors.As(err, &nf):
		observability.ScansTotal.WithLabelValues(observability.OutcomeNotFound).Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "id": nf.ID})
	case errors.As(err, &wf):
		observability.ScansTotal.WithLabelValues(observability.OutcomeWriteFailure).Inc()
		h.log.Error("scan write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write_failure"})
	default:
		h.log.Error("scan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

// ListPresent is the public dashboard listing: present attendees only.
func (h *Handler) ListPresent(c *gin.Context) {
	h.list(c, true)
}

// ListAll is the administrative listing: every roster row.
func (h *Handler) ListAll(c *gin.Context) {
	h.list(c, false)
}

func (h *Handler) list(c *gin.Context, presentOnly bool) {
	attendees, err := h.svc.List(c.Request.Context(), presentOnly)
	if err != nil {
		h.log.Error("list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	if attendees == nil {
		attendees = []checkin.Attendee{}
	}
	c.JSON(http.StatusOK, attendees)
}

// Seed accepts pasted roster text, either raw in the body or wrapped as
// {"text": "..."} JSON, and upserts the parsed rows.
func (h *Handler) Seed(c *gin.Context) {
	var text string
	if c.ContentType() == "application/json" {
		var req struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "detail": "text required"})
			return
		}
		text = req.Text
	} else {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input"})
			return
		}
		text = string(raw)
	}

	entries := checkin.ParseRoster(text)
	count, err := h.svc.Seed(c.Request.Context(), entries)
	if err != nil {
		if errors.Is(err, checkin.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "detail": "no valid rows, want 'id, name' per line"})
			return
		}
		h.log.Error("seed failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write_failure"})
		return
	}

	observability.SeededRows.Add(float64(count))
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// SetPresent is the administrative presence toggle.
func (h *Handler) SetPresent(c *gin.Context) {
	var req struct {
		Present *bool `json:"present" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "detail": "present required"})
		return
	}

	att, err := h.svc.SetPresent(c.Request.Context(), c.Param("id"), *req.Present)
	if err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": att})
}

// OverrideStatus is the administrative status override; it bypasses the
// transition table but refuses attendees who are not present.
func (h *Handler) OverrideStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "detail": "status required"})
		return
	}
	status, err := checkin.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "detail": err.Error()})
		return
	}

	att, err := h.svc.OverrideStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": att})
}

func (h *Handler) adminError(c *gin.Context, err error) {
	var nf *checkin.NotFoundError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "id": nf.ID})
	case errors.Is(err, checkin.ErrNotPresent):
		c.JSON(http.StatusForbidden, gin.H{"error": "not_present"})
	default:
		h.log.Error("admin update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write_failure"})
	}
}
