package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/service"
	"github.com/jengzang/sightings-backend-go/pkg/response"
)

// IngestRequest is the body of POST /api/v1/occurrences
type IngestRequest struct {
	Occurrences []models.Occurrence `json:"occurrences" binding:"required,min=1"`
}

// OccurrenceHandler handles HTTP requests for occurrences
type OccurrenceHandler struct {
	service *service.OccurrenceService
}

// NewOccurrenceHandler creates a new occurrence handler
func NewOccurrenceHandler(occurrenceService *service.OccurrenceService) *OccurrenceHandler {
	return &OccurrenceHandler{service: occurrenceService}
}

// GetOccurrences handles GET /api/v1/occurrences
func (h *OccurrenceHandler) GetOccurrences(c *gin.Context) {
	var filter models.OccurrenceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.GetOccurrences(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// GetOccurrenceByID handles GET /api/v1/occurrences/:id
func (h *OccurrenceHandler) GetOccurrenceByID(c *gin.Context) {
	occurrence, err := h.service.GetOccurrenceByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, occurrence)
}

// IngestOccurrences handles POST /api/v1/occurrences
func (h *OccurrenceHandler) IngestOccurrences(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	stored, err := h.service.IngestOccurrences(req.Occurrences)
	if err != nil {
		writeError(c, err)
		return
	}

	ids := make([]string, 0, len(stored))
	for _, o := range stored {
		ids = append(ids, o.ID)
	}
	response.Created(c, gin.H{
		"ids":   ids,
		"count": len(ids),
	})
}

// DeleteOccurrence handles DELETE /api/v1/occurrences/:id
func (h *OccurrenceHandler) DeleteOccurrence(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteOccurrence(id); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}
