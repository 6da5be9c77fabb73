package client

// Stats holds publication counts and derived open access percentages.
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

// Entity represents a country or an institution.
type Entity struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	EntityType       string       `json:"entity_type"`
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

// Bounds carries the min/max values observed across a filtered result set.
type Bounds struct {
	MinNOutputs     int     `json:"min_n_outputs"`
	MaxNOutputs     int     `json:"max_n_outputs"`
	MinNOutputsOpen int     `json:"min_n_outputs_open"`
	MaxNOutputsOpen int     `json:"max_n_outputs_open"`
	MinPOutputsOpen float64 `json:"min_p_outputs_open"`
	MaxPOutputsOpen float64 `json:"max_p_outputs_open"`
}

// QueryResult is a page of entities plus pagination metadata.
type QueryResult struct {
	Items    []Entity `json:"items"`
	NItems   int      `json:"n_items"`
	Page     int      `json:"page"`
	Limit    int      `json:"limit"`
	NPages   int      `json:"n_pages"`
	OrderBy  string   `json:"order_by,omitempty"`
	OrderDir string   `json:"order_dir,omitempty"`
	Bounds   Bounds   `json:"bounds"`
	Build    string   `json:"build,omitempty"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Build         string  `json:"build"`
	Countries     int     `json:"countries"`
	Institutions  int     `json:"institutions"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
