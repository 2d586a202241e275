package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/repository"
)

// ErrInvalidOccurrence is returned when an ingested occurrence fails validation
var ErrInvalidOccurrence = errors.New("invalid occurrence")

// MaxIngestBatch caps the number of occurrences accepted per request
const MaxIngestBatch = 5000

// Invalidator drops derived data after the occurrence store changes
type Invalidator interface {
	Invalidate()
}

// OccurrenceService handles business logic for occurrences
type OccurrenceService struct {
	repo        *repository.OccurrenceRepository
	invalidator Invalidator
}

// NewOccurrenceService creates a new occurrence service
func NewOccurrenceService(repo *repository.OccurrenceRepository, invalidator Invalidator) *OccurrenceService {
	return &OccurrenceService{
		repo:        repo,
		invalidator: invalidator,
	}
}

// ValidateOccurrence checks the fields the travel builder depends on
func ValidateOccurrence(o models.Occurrence) error {
	switch {
	case o.ObservedAtMs <= 0:
		return fmt.Errorf("%w: observedAtMs must be positive", ErrInvalidOccurrence)
	case math.IsNaN(o.Location.Lat) || o.Location.Lat < -90 || o.Location.Lat > 90:
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidOccurrence, o.Location.Lat)
	case math.IsNaN(o.Location.Lon) || o.Location.Lon < -180 || o.Location.Lon > 180:
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidOccurrence, o.Location.Lon)
	case strings.TrimSpace(o.Taxon.ScientificName) == "":
		return fmt.Errorf("%w: scientificName is required", ErrInvalidOccurrence)
	case o.Count < 0:
		return fmt.Errorf("%w: count must not be negative", ErrInvalidOccurrence)
	}
	return nil
}

// PrepareOccurrences validates a batch and assigns ids to occurrences without one.
// Ids must be unique within the batch.
func PrepareOccurrences(occurrences []models.Occurrence) ([]models.Occurrence, error) {
	prepared := make([]models.Occurrence, 0, len(occurrences))
	seen := make(map[string]struct{}, len(occurrences))

	for i, o := range occurrences {
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		o.Taxon.ScientificName = strings.TrimSpace(o.Taxon.ScientificName)

		if err := ValidateOccurrence(o); err != nil {
			return nil, fmt.Errorf("occurrence %d (%s): %w", i, o.ID, err)
		}
		if _, dup := seen[o.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidOccurrence, o.ID)
		}
		seen[o.ID] = struct{}{}

		prepared = append(prepared, o)
	}

	return prepared, nil
}

// IngestOccurrences validates and stores a batch of occurrences
func (s *OccurrenceService) IngestOccurrences(occurrences []models.Occurrence) ([]models.Occurrence, error) {
	if len(occurrences) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidOccurrence)
	}
	if len(occurrences) > MaxIngestBatch {
		return nil, fmt.Errorf("%w: batch of %d exceeds %d", ErrInvalidOccurrence, len(occurrences), MaxIngestBatch)
	}

	prepared, err := PrepareOccurrences(occurrences)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertOccurrences(prepared); err != nil {
		return nil, fmt.Errorf("failed to store occurrences: %w", err)
	}

	s.invalidate()
	return prepared, nil
}

// GetOccurrences retrieves occurrences with filtering and pagination
func (s *OccurrenceService) GetOccurrences(filter models.OccurrenceFilter) (*models.OccurrencesResponse, error) {
	if err := validateBBox(filter.MinLat, filter.MinLon, filter.MaxLat, filter.MaxLon); err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	occurrences, total, err := s.repo.GetOccurrences(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get occurrences: %w", err)
	}
	if occurrences == nil {
		occurrences = []models.Occurrence{}
	}

	return &models.OccurrencesResponse{
		Data:       occurrences,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// GetOccurrenceByID retrieves a single occurrence by ID
func (s *OccurrenceService) GetOccurrenceByID(id string) (*models.Occurrence, error) {
	return s.repo.GetOccurrenceByID(id)
}

// DeleteOccurrence removes an occurrence
func (s *OccurrenceService) DeleteOccurrence(id string) error {
	if err := s.repo.DeleteOccurrence(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *OccurrenceService) invalidate() {
	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}
}
