package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/service"
	"github.com/jengzang/sightings-backend-go/pkg/response"
)

// GeoJSONContentType is the media type of FeatureCollection responses
const GeoJSONContentType = "application/geo+json"

// TravelHandler handles HTTP requests for inferred travel paths
type TravelHandler struct {
	service *service.TravelService
}

// NewTravelHandler creates a new travel handler
func NewTravelHandler(travelService *service.TravelService) *TravelHandler {
	return &TravelHandler{service: travelService}
}

// GetTravelPaths handles GET /api/v1/travel/paths
// Responds with a bare GeoJSON FeatureCollection for map layers.
func (h *TravelHandler) GetTravelPaths(c *gin.Context) {
	var filter models.TravelFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	fc, err := h.service.GetTravelPaths(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", GeoJSONContentType)
	c.JSON(http.StatusOK, fc)
}

// GetSegmentSummaries handles GET /api/v1/travel/segments
func (h *TravelHandler) GetSegmentSummaries(c *gin.Context) {
	var filter models.TravelFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.GetSegmentSummaries(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// SegmentOccurrences handles POST /api/v1/travel/segment
// The body is an IngestRequest; nothing is stored.
func (h *TravelHandler) SegmentOccurrences(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	fc, err := h.service.SegmentOccurrences(req.Occurrences)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", GeoJSONContentType)
	c.JSON(http.StatusOK, fc)
}
