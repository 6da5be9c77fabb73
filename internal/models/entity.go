// Package models defines data types for the open access atlas.
package models

import "fmt"

// EntityType identifies the kind of record an Entity describes.
type EntityType string

// Supported entity types.
const (
	TypeCountry     EntityType = "country"
	TypeInstitution EntityType = "institution"
)

// ParseEntityType validates a raw entity type string.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case TypeCountry, TypeInstitution:
		return EntityType(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidEntityType, s)
}

// Plural returns the collection path segment for the entity type.
func (t EntityType) Plural() string {
	switch t {
	case TypeCountry:
		return "countries"
	case TypeInstitution:
		return "institutions"
	}

	return string(t)
}

// Stats holds publication counts and derived open access percentages for an
// entity or a single publication year. The four p_outputs_* breakdown fields
// are integer percentages quantized with the largest remainder method so they
// sum to exactly 100 whenever NOutputs is non-zero.
type Stats struct {
	NOutputs                      int     `json:"n_outputs"`
	NOutputsOpen                  int     `json:"n_outputs_open"`
	NOutputsPublisherOpenOnly     int     `json:"n_outputs_publisher_open_only"`
	NOutputsBoth                  int     `json:"n_outputs_both"`
	NOutputsOtherPlatformOpenOnly int     `json:"n_outputs_other_platform_open_only"`
	NOutputsClosed                int     `json:"n_outputs_closed"`
	POutputsOpen                  float64 `json:"p_outputs_open"`
	POutputsPublisherOpenOnly     int     `json:"p_outputs_publisher_open_only"`
	POutputsBoth                  int     `json:"p_outputs_both"`
	POutputsOtherPlatformOpenOnly int     `json:"p_outputs_other_platform_open_only"`
	POutputsClosed                int     `json:"p_outputs_closed"`
}

// Year is the statistics snapshot for a single publication year.
type Year struct {
	Year  int   `json:"year"`
	Stats Stats `json:"stats"`
}

// Repository summarizes an institution's output counts in one repository.
type Repository struct {
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	TotalOutputs int    `json:"total_outputs"`
}

// Entity represents a country or an institution with its current aggregate
// statistics and nested per-year statistics. Entities are produced by an
// external batch pipeline and never mutated by this service.
type Entity struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	EntityType       EntityType   `json:"entity_type"`
	Region           string       `json:"region,omitempty"`
	Subregion        string       `json:"subregion,omitempty"`
	CountryCode      string       `json:"country_code,omitempty"`
	CountryName      string       `json:"country_name,omitempty"`
	InstitutionTypes []string     `json:"institution_types,omitempty"`
	Acronyms         []string     `json:"acronyms,omitempty"`
	Stats            Stats        `json:"stats"`
	StartYear        int          `json:"start_year"`
	EndYear          int          `json:"end_year"`
	Years            []Year       `json:"years,omitempty"`
	Repositories     []Repository `json:"repositories,omitempty"`
}

// Validate checks the invariants the data pipeline is expected to uphold.
// It is used by the importer, not the serving path.
func (e *Entity) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}

	if e.Name == "" {
		return ErrMissingName
	}

	if _, err := ParseEntityType(string(e.EntityType)); err != nil {
		return err
	}

	if err := e.Stats.validate(); err != nil {
		return fmt.Errorf("entity %s: %w", e.ID, err)
	}

	for _, y := range e.Years {
		if err := y.Stats.validate(); err != nil {
			return fmt.Errorf("entity %s year %d: %w", e.ID, y.Year, err)
		}
	}

	return nil
}

func (s *Stats) validate() error {
	if s.NOutputs < 0 {
		return fmt.Errorf("n_outputs is negative: %d", s.NOutputs)
	}

	if s.NOutputsOpen < 0 || s.NOutputsOpen > s.NOutputs {
		return fmt.Errorf("n_outputs_open %d outside [0, %d]", s.NOutputsOpen, s.NOutputs)
	}

	return nil
}
