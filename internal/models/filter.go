package models

import "slices"

// Location filter values accepted from users. "in-office" selects jobs whose
// category is LocationOther.
const (
	FilterRemote   = "remote"
	FilterHybrid   = "hybrid"
	FilterInOffice = "in-office"
)

// Filter is the set of user-chosen constraints. The zero value matches every
// job. Experience and Salary are lists so the UI can hold multiple values, but
// only the first entry is used when querying.
type Filter struct {
	Company    string   `json:"company,omitempty"`
	Experience []int    `json:"experience,omitempty"`
	Locations  []string `json:"location,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	Salary     []int    `json:"salary,omitempty"`
}

// Equal reports whether both filters constrain the dataset identically.
// Nil and empty slices compare equal.
func (f Filter) Equal(other Filter) bool {
	return f.Company == other.Company &&
		slices.Equal(f.Experience, other.Experience) &&
		slices.Equal(f.Locations, other.Locations) &&
		slices.Equal(f.Roles, other.Roles) &&
		slices.Equal(f.Salary, other.Salary)
}

// IsEmpty reports whether the filter has no constraint at all.
func (f Filter) IsEmpty() bool {
	return f.Equal(Filter{})
}

// Clone returns a deep copy so callers can hand the filter to another
// goroutine without sharing slices.
func (f Filter) Clone() Filter {
	return Filter{
		Company:    f.Company,
		Experience: slices.Clone(f.Experience),
		Locations:  slices.Clone(f.Locations),
		Roles:      slices.Clone(f.Roles),
		Salary:     slices.Clone(f.Salary),
	}
}
