package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/sightings-backend-go/internal/config"
	"github.com/jengzang/sightings-backend-go/internal/handler"
	"github.com/jengzang/sightings-backend-go/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	Occurrence *handler.OccurrenceHandler
	Travel     *handler.TravelHandler
	Species    *handler.SpeciesHandler
}

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, h Handlers, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Sightings Backend API is running",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))
	{
		api.GET("/species", h.Species.GetSpecies)

		occurrences := api.Group("/occurrences")
		{
			occurrences.GET("", h.Occurrence.GetOccurrences)
			occurrences.GET("/:id", h.Occurrence.GetOccurrenceByID)

			auth := middleware.JWTAuth(cfg.JWTSecret)
			occurrences.POST("", auth, h.Occurrence.IngestOccurrences)
			occurrences.DELETE("/:id", auth, h.Occurrence.DeleteOccurrence)
		}

		travel := api.Group("/travel")
		{
			travel.GET("/paths", h.Travel.GetTravelPaths)
			travel.GET("/segments", h.Travel.GetSegmentSummaries)
			travel.POST("/segment", h.Travel.SegmentOccurrences)
		}
	}

	return r
}
