package models

import "strings"

// Location categories a job can fall in. Anything that is neither remote nor
// hybrid is treated as an office location.
const (
	LocationRemote = "remote"
	LocationHybrid = "hybrid"
	LocationOther  = "other"
)

// Job is a single posting as served by the dataset. Records are never
// mutated after load.
type Job struct {
	ID            string `json:"id"`
	Company       string `json:"company"`
	Role          string `json:"role"`
	Location      string `json:"location"`
	MinSalary     *int   `json:"min_salary,omitempty"`
	MaxSalary     *int   `json:"max_salary,omitempty"`
	Currency      string `json:"currency,omitempty"`
	MinExperience *int   `json:"min_experience,omitempty"`
	MaxExperience *int   `json:"max_experience,omitempty"`
	Description   string `json:"description,omitempty"`
	LogoURL       string `json:"logo_url,omitempty"`
	URL           string `json:"url,omitempty"`
}

// LocationCategory maps the free-text location onto remote, hybrid or other.
func (j Job) LocationCategory() string {
	switch strings.ToLower(strings.TrimSpace(j.Location)) {
	case LocationRemote:
		return LocationRemote
	case LocationHybrid:
		return LocationHybrid
	default:
		return LocationOther
	}
}
