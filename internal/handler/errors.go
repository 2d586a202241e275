package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/sightings-backend-go/internal/analysis/travel"
	"github.com/jengzang/sightings-backend-go/internal/repository"
	"github.com/jengzang/sightings-backend-go/internal/service"
	"github.com/jengzang/sightings-backend-go/pkg/response"
)

// writeError maps service errors onto response envelopes
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidOccurrence), errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrInvalidFilter):
		response.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, travel.ErrOutOfOrder), errors.Is(err, repository.ErrWindowTooLarge):
		response.UnprocessableEntity(c, err.Error())
	default:
		log.Printf("[Handler] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.Error(err)
		response.InternalError(c, "internal server error")
	}
}
