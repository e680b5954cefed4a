package state

import (
	"fmt"
	"strings"

	"github.com/MrJJimenez/jobboard/internal/models"
)

// Status is the lifecycle of the current fetch.
type Status int

const (
	Idle Status = iota
	Loading
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Snapshot is a copy of the store state handed to readers.
type Snapshot struct {
	Filter models.Filter
	Status Status
	Result *models.ResultSet
	Err    error
}

// Jobs returns the loaded jobs, or nil when nothing is loaded.
func (s Snapshot) Jobs() []models.Job {
	if s.Result == nil {
		return nil
	}
	return s.Result.Data
}

// CanLoadMore reports whether LoadMore would issue a fetch.
func (s Snapshot) CanLoadMore() bool {
	return s.Status == Succeeded && s.Result != nil && !s.Result.Exhausted()
}

// Dimension names a filter field that SetFilter can update.
type Dimension string

const (
	DimCompany    Dimension = "company"
	DimExperience Dimension = "experience"
	DimLocation   Dimension = "location"
	DimRoles      Dimension = "roles"
	DimSalary     Dimension = "salary"
)

// ParseDimension accepts the canonical names plus a few singular/plural aliases.
func ParseDimension(value string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "company":
		return DimCompany, nil
	case "experience", "exp":
		return DimExperience, nil
	case "location", "locations":
		return DimLocation, nil
	case "roles", "role":
		return DimRoles, nil
	case "salary":
		return DimSalary, nil
	default:
		return "", fmt.Errorf("unknown filter %q", value)
	}
}
