package travel

import (
	"github.com/jengzang/sightings-backend-go/internal/models"
)

const baseMs int64 = 1721030400000 // 2024-07-15T08:00:00Z

type speedTable map[string]float64

func (t speedTable) ExpectedSpeedKmh(name string) (float64, bool) {
	s, ok := t[name]
	return s, ok
}

var testSpeeds = speedTable{
	"Orcinus orca":           8,
	"Megaptera novaeangliae": 5,
}

func speciesID(id int64) *int64 { return &id }

func orca(id string, minutes int64, lat, lon float64) models.Occurrence {
	return occ(id, minutes, lat, lon, "Orcinus orca", speciesID(41521))
}

func humpback(id string, minutes int64, lat, lon float64) models.Occurrence {
	return occ(id, minutes, lat, lon, "Megaptera novaeangliae", speciesID(41479))
}

func occ(id string, minutes int64, lat, lon float64, name string, sid *int64) models.Occurrence {
	return models.Occurrence{
		ID:           id,
		ObservedAtMs: baseMs + minutes*60_000,
		Location:     models.Location{Lat: lat, Lon: lon},
		Taxon:        models.Taxon{ScientificName: name, SpeciesID: sid},
	}
}

func groupIDs(segments []Segment) [][]string {
	groups := make([][]string, 0, len(segments))
	for _, s := range segments {
		ids := make([]string, 0, len(s.Occurrences))
		for _, o := range s.Occurrences {
			ids = append(ids, o.ID)
		}
		groups = append(groups, ids)
	}
	return groups
}
