package models

// Location is a geographic point in degrees
type Location struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Taxon identifies the species of an occurrence.
// SpeciesID is nil when only a coarser rank (genus, family) is known.
type Taxon struct {
	ScientificName string `json:"scientificName"`
	SpeciesID      *int64 `json:"speciesId"`
}

// SameSpecies reports whether both taxa resolve to the same species.
// A nil species never matches, not even another nil.
func (t Taxon) SameSpecies(other Taxon) bool {
	if t.SpeciesID == nil || other.SpeciesID == nil {
		return false
	}
	return *t.SpeciesID == *other.SpeciesID
}

// Occurrence represents a single reported wildlife sighting
type Occurrence struct {
	ID           string   `json:"id" db:"id"`
	ObservedAtMs int64    `json:"observedAtMs" db:"observed_at_ms"` // Epoch milliseconds
	Location     Location `json:"location"`
	Taxon        Taxon    `json:"taxon"`

	// Ingest metadata
	Source string `json:"source,omitempty" db:"source"` // e.g. inaturalist, whale-alert, manual
	Count  int    `json:"count,omitempty" db:"count"`   // Individuals reported
	URL    string `json:"url,omitempty" db:"url"`

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
}

// OccurrencesResponse represents a paginated response of occurrences
type OccurrencesResponse struct {
	Data       []Occurrence `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

// SpeciesSpeed is one row of the expected travel speed table
type SpeciesSpeed struct {
	ScientificName   string  `json:"scientificName"`
	ExpectedSpeedKmh float64 `json:"expectedSpeedKmh"`
}
