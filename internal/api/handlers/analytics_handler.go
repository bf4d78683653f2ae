package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/salesight/salesight/internal/api/middleware"
	"github.com/salesight/salesight/internal/export"
	"github.com/salesight/salesight/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Snapshot returns the full analytics aggregate for the caller's filtered
// records.
func (h *AnalyticsHandler) Snapshot(c *gin.Context) {
	snap, err := h.analyticsService.Snapshot(c.Request.Context(), middleware.UserID(c), filterFromQuery(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to compute snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Forecast returns the next-month and next-quarter revenue projection.
func (h *AnalyticsHandler) Forecast(c *gin.Context) {
	forecast, err := h.analyticsService.Forecast(c.Request.Context(), middleware.UserID(c), filterFromQuery(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to compute forecast")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute forecast"})
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// ExportWorkbook streams the snapshot as a multi-sheet workbook attachment.
func (h *AnalyticsHandler) ExportWorkbook(c *gin.Context) {
	snap, err := h.analyticsService.Snapshot(c.Request.Context(), middleware.UserID(c), filterFromQuery(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to compute snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics"})
		return
	}

	payload, err := export.SnapshotWorkbook(snap, h.analyticsService)
	if err != nil {
		log.Error().Err(err).Msg("failed to render workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}

	filename := "sales_analytics_" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
