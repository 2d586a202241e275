package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jengzang/sightings-backend-go/internal/database"
	"github.com/jengzang/sightings-backend-go/internal/models"
)

var (
	// ErrNotFound is returned when a requested occurrence does not exist
	ErrNotFound = errors.New("occurrence not found")

	// ErrWindowTooLarge is returned when a window holds more than MaxWindowOccurrences rows
	ErrWindowTooLarge = errors.New("window holds too many occurrences")
)

// MaxWindowOccurrences caps an unpaged window query
const MaxWindowOccurrences = 10000

const occurrenceColumns = `id, observed_at_ms, longitude, latitude, scientific_name, species_id,
	source, count, url, created_at`

// OccurrenceRepository handles database operations for occurrences
type OccurrenceRepository struct {
	db *sql.DB
}

// NewOccurrenceRepository creates a new occurrence repository
func NewOccurrenceRepository(db *sql.DB) *OccurrenceRepository {
	return &OccurrenceRepository{db: db}
}

// buildConditions translates a filter into WHERE clauses
func buildConditions(filter models.OccurrenceFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.StartTime > 0 {
		conditions = append(conditions, "observed_at_ms >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "observed_at_ms <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.SpeciesID > 0 {
		conditions = append(conditions, "species_id = ?")
		args = append(args, filter.SpeciesID)
	}
	if filter.ScientificName != "" {
		conditions = append(conditions, "scientific_name = ?")
		args = append(args, filter.ScientificName)
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.HasBBox() {
		conditions = append(conditions, "latitude BETWEEN ? AND ?", "longitude BETWEEN ? AND ?")
		args = append(args, *filter.MinLat, *filter.MaxLat, *filter.MinLon, *filter.MaxLon)
	}

	return conditions, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// GetOccurrences retrieves occurrences with filtering and pagination, oldest first
func (r *OccurrenceRepository) GetOccurrences(filter models.OccurrenceFilter) ([]models.Occurrence, int64, error) {
	conditions, args := buildConditions(filter)
	where := whereClause(conditions)

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM occurrences"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count occurrences: %w", err)
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

	offset := (filter.Page - 1) * filter.PageSize
	query := "SELECT " + occurrenceColumns + " FROM occurrences" + where +
		" ORDER BY observed_at_ms ASC, id ASC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	occurrences, err := r.query(query, args...)
	if err != nil {
		return nil, 0, err
	}

	return occurrences, total, nil
}

// GetWindow retrieves every occurrence matching the filter, oldest first,
// ignoring pagination. Windows with more than MaxWindowOccurrences rows
// fail with ErrWindowTooLarge rather than being truncated.
func (r *OccurrenceRepository) GetWindow(filter models.OccurrenceFilter) ([]models.Occurrence, error) {
	conditions, args := buildConditions(filter)
	query := "SELECT " + occurrenceColumns + " FROM occurrences" + whereClause(conditions) +
		" ORDER BY observed_at_ms ASC, id ASC LIMIT ?"
	args = append(args, MaxWindowOccurrences+1)

	occurrences, err := r.query(query, args...)
	if err != nil {
		return nil, err
	}
	if len(occurrences) > MaxWindowOccurrences {
		return nil, fmt.Errorf("%w: more than %d", ErrWindowTooLarge, MaxWindowOccurrences)
	}
	return occurrences, nil
}

// GetOccurrenceByID retrieves a single occurrence by ID
func (r *OccurrenceRepository) GetOccurrenceByID(id string) (*models.Occurrence, error) {
	occurrences, err := r.query("SELECT "+occurrenceColumns+" FROM occurrences WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		return nil, ErrNotFound
	}
	return &occurrences[0], nil
}

// InsertOccurrences upserts occurrences in one transaction
func (r *OccurrenceRepository) InsertOccurrences(occurrences []models.Occurrence) error {
	if len(occurrences) == 0 {
		return nil
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO occurrences (
				id, observed_at_ms, longitude, latitude, scientific_name, species_id, source, count, url
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				observed_at_ms = excluded.observed_at_ms,
				longitude = excluded.longitude,
				latitude = excluded.latitude,
				scientific_name = excluded.scientific_name,
				species_id = excluded.species_id,
				source = excluded.source,
				count = excluded.count,
				url = excluded.url`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, o := range occurrences {
			var speciesID sql.NullInt64
			if o.Taxon.SpeciesID != nil {
				speciesID = sql.NullInt64{Int64: *o.Taxon.SpeciesID, Valid: true}
			}

			if _, err := stmt.Exec(
				o.ID, o.ObservedAtMs, o.Location.Lon, o.Location.Lat,
				o.Taxon.ScientificName, speciesID, o.Source, o.Count, o.URL,
			); err != nil {
				return fmt.Errorf("failed to insert occurrence %s: %w", o.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[OccurrenceRepository] Upserted %d occurrences", len(occurrences))
	return nil
}

// DeleteOccurrence removes an occurrence by ID
func (r *OccurrenceRepository) DeleteOccurrence(id string) error {
	result, err := r.db.Exec("DELETE FROM occurrences WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete occurrence: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOccurrences returns the number of stored occurrences
func (r *OccurrenceRepository) CountOccurrences() (int64, error) {
	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM occurrences").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count occurrences: %w", err)
	}
	return total, nil
}

func (r *OccurrenceRepository) query(query string, args ...interface{}) ([]models.Occurrence, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrences: %w", err)
	}
	defer rows.Close()

	var occurrences []models.Occurrence
	for rows.Next() {
		var o models.Occurrence
		var speciesID sql.NullInt64
		var createdAt sql.NullString

		if err := rows.Scan(
			&o.ID, &o.ObservedAtMs, &o.Location.Lon, &o.Location.Lat,
			&o.Taxon.ScientificName, &speciesID,
			&o.Source, &o.Count, &o.URL, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}

		if speciesID.Valid {
			id := speciesID.Int64
			o.Taxon.SpeciesID = &id
		}
		if createdAt.Valid {
			ts := createdAt.String
			o.CreatedAt = &ts
		}

		occurrences = append(occurrences, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return occurrences, nil
}
