package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medstock/internal/domain/reports"
)

// ReportsHandler serves the dashboard report.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Dashboard handles GET /reports/dashboard.
// The report is recomputed from the ledger on every request; an optional
// date parameter (YYYY-MM-DD) sets the report day, defaulting to today.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	today := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		if parsed, err := time.Parse("2006-01-02", dateStr); err == nil {
			today = parsed
		}
	}

	dashboard, err := h.service.Build(ctx, ownerID, today)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
