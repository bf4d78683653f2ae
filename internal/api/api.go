package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/salesight/salesight/internal/api/handlers"
	"github.com/salesight/salesight/internal/api/middleware"
	"github.com/salesight/salesight/internal/service"
)

type Services struct {
	SalesService     *service.SalesService
	AnalyticsService *service.AnalyticsService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.Identity())

	if services != nil {
		if services.SalesService != nil {
			salesHandler := handlers.NewSalesHandler(services.SalesService)
			salesGroup := apiGroup.Group("/sales")
			{
				salesGroup.POST("/upload", salesHandler.Upload)
				salesGroup.GET("", salesHandler.List)
				salesGroup.DELETE("", salesHandler.Clear)
				salesGroup.GET("/export", salesHandler.ExportCSV)
			}
		}

		if services.AnalyticsService != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.AnalyticsService)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/snapshot", analyticsHandler.Snapshot)
				analyticsGroup.GET("/forecast", analyticsHandler.Forecast)
				analyticsGroup.GET("/export", analyticsHandler.ExportWorkbook)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
