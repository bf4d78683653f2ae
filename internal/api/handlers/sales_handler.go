package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/salesight/salesight/internal/api/middleware"
	"github.com/salesight/salesight/internal/domain"
	"github.com/salesight/salesight/internal/export"
	"github.com/salesight/salesight/internal/service"
)

type SalesHandler struct {
	salesService *service.SalesService
}

func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Upload accepts one or more data files in a multipart form and appends the
// normalized records to the caller's set.
func (h *SalesHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	uploaded := make([]domain.UploadedFile, 0, len(files))
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read " + file.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read " + file.Filename})
			return
		}
		uploaded = append(uploaded, domain.UploadedFile{
			Filename: file.Filename,
			Data:     data,
		})
	}

	result, err := h.salesService.Upload(c.Request.Context(), middleware.UserID(c), uploaded)
	if err != nil {
		var decodeErr *domain.DecodeError
		if errors.As(err, &decodeErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": decodeErr.Error()})
			return
		}
		log.Error().Err(err).Msg("upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// List returns the caller's records with optional filter and sort query
// parameters applied.
func (h *SalesHandler) List(c *gin.Context) {
	filter := filterFromQuery(c)
	sortSpec := domain.SortSpec{
		Field:     c.Query("sort_by"),
		Direction: domain.SortDirection(c.Query("sort_dir")),
	}

	records, err := h.salesService.View(c.Request.Context(), middleware.UserID(c), filter, sortSpec)
	if err != nil {
		log.Error().Err(err).Msg("failed to list records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// Clear drops every record the caller has.
func (h *SalesHandler) Clear(c *gin.Context) {
	if err := h.salesService.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		log.Error().Err(err).Msg("failed to clear records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all records cleared"})
}

// ExportCSV streams the caller's filtered records as a CSV attachment.
func (h *SalesHandler) ExportCSV(c *gin.Context) {
	filter := filterFromQuery(c)
	sortSpec := domain.SortSpec{
		Field:     c.Query("sort_by"),
		Direction: domain.SortDirection(c.Query("sort_dir")),
	}

	records, err := h.salesService.View(c.Request.Context(), middleware.UserID(c), filter, sortSpec)
	if err != nil {
		log.Error().Err(err).Msg("failed to export records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export records"})
		return
	}

	payload, err := export.RecordsCSV(records)
	if err != nil {
		log.Error().Err(err).Msg("failed to render csv")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales_data.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

func filterFromQuery(c *gin.Context) domain.FilterCriteria {
	return domain.FilterCriteria{
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		Region:       c.Query("region"),
		Category:     c.Query("category"),
		CustomerType: c.Query("customer_type"),
	}
}
