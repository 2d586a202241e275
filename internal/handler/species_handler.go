package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/species"
	"github.com/jengzang/sightings-backend-go/pkg/response"
)

// SpeciesHandler exposes the expected travel speed table
type SpeciesHandler struct {
	table *species.Table
}

// NewSpeciesHandler creates a new species handler
func NewSpeciesHandler(table *species.Table) *SpeciesHandler {
	return &SpeciesHandler{table: table}
}

// GetSpecies handles GET /api/v1/species
func (h *SpeciesHandler) GetSpecies(c *gin.Context) {
	entries := h.table.Entries()
	out := make([]models.SpeciesSpeed, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.SpeciesSpeed{
			ScientificName:   e.ScientificName,
			ExpectedSpeedKmh: e.ExpectedSpeedKmh,
		})
	}

	response.Success(c, gin.H{
		"data":  out,
		"count": len(out),
	})
}
