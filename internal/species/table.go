// Package species holds the expected travel speed table keyed by scientific name.
//
// The table is loaded once (embedded default or a YAML file) and never mutated
// afterwards, so a single *Table can be shared by concurrent segment builds.
package species

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed species.yml
var defaultTable []byte

// Entry is one species row in the table file
type Entry struct {
	ScientificName   string  `yaml:"scientificName" validate:"required"`
	ExpectedSpeedKmh float64 `yaml:"expectedSpeedKmh" validate:"gt=0"`
}

// File is the root of the YAML document
type File struct {
	Species []Entry `yaml:"species" validate:"required,min=1,dive"`
}

// Table maps scientific names to expected travel speeds in km/h
type Table struct {
	speeds map[string]float64
}

// New builds a table from entries. Names are trimmed; blank and duplicate
// names are rejected.
func New(entries []Entry) (*Table, error) {
	speeds := make(map[string]float64, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.ScientificName)
		if name == "" {
			return nil, fmt.Errorf("species entry %d has a blank scientificName", i)
		}
		if _, dup := speeds[name]; dup {
			return nil, fmt.Errorf("duplicate species entry: %s", name)
		}
		speeds[name] = e.ExpectedSpeedKmh
	}
	return &Table{speeds: speeds}, nil
}

// Parse decodes and validates a YAML species table
func Parse(data []byte) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse species table: %w", err)
	}

	v := validator.New()
	if err := v.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid species table: %w", err)
	}

	return New(f.Species)
}

// Load reads a species table from path
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species table %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded table
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded species table is invalid: %v", err))
	}
	return t
}

// ExpectedSpeedKmh returns the expected travel speed for a species.
// Surrounding whitespace in the name is ignored.
func (t *Table) ExpectedSpeedKmh(scientificName string) (float64, bool) {
	speed, ok := t.speeds[strings.TrimSpace(scientificName)]
	return speed, ok
}

// Len returns the number of species in the table
func (t *Table) Len() int {
	return len(t.speeds)
}

// Entries returns the table rows sorted by scientific name
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.speeds))
	for name, speed := range t.speeds {
		entries = append(entries, Entry{ScientificName: name, ExpectedSpeedKmh: speed})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ScientificName < entries[j].ScientificName
	})
	return entries
}
