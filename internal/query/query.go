// Package query filters and paginates an in-memory job dataset.
package query

import (
	"slices"
	"strings"

	"github.com/MrJJimenez/jobboard/internal/models"
)

// FilterAndPaginate narrows jobs by filter and returns the requested page.
// The input slice is not modified. Page number and size must be positive.
func FilterAndPaginate(jobs []models.Job, filter models.Filter, page models.Page) models.ResultSet {
	return Paginate(Filter(jobs, filter), page)
}

// Filter applies every dimension of filter in turn. Dimensions combine with
// AND; values within a multi-valued dimension combine with OR.
func Filter(jobs []models.Job, filter models.Filter) []models.Job {
	out := slices.Clone(jobs)

	if company := strings.ToLower(strings.TrimSpace(filter.Company)); company != "" {
		out = keep(out, func(job models.Job) bool {
			return strings.Contains(strings.ToLower(job.Company), company)
		})
	}

	if len(filter.Experience) != 0 {
		threshold := filter.Experience[0]
		out = keep(out, func(job models.Job) bool {
			return job.MinExperience != nil && threshold <= *job.MinExperience
		})
	}

	if len(filter.Locations) != 0 {
		out = keep(out, func(job models.Job) bool {
			return matchesLocation(job, filter.Locations)
		})
	}

	if len(filter.Roles) != 0 {
		out = keep(out, func(job models.Job) bool {
			return slices.Contains(filter.Roles, job.Role)
		})
	}

	if len(filter.Salary) != 0 {
		threshold := filter.Salary[0]
		out = keep(out, func(job models.Job) bool {
			return job.MinSalary != nil && threshold <= *job.MinSalary
		})
	}

	return out
}

// Paginate slices an already filtered list. Pages past the end are empty but
// still carry the full count.
func Paginate(jobs []models.Job, page models.Page) models.ResultSet {
	total := len(jobs)
	result := models.ResultSet{
		Data: []models.Job{},
		Pagination: models.Pagination{
			Page:  page.Number,
			Size:  page.Size,
			Total: total,
		},
	}

	start := (page.Number - 1) * page.Size
	if start >= total {
		return result
	}
	end := min(start+page.Size, total)
	result.Data = jobs[start:end]
	return result
}

func matchesLocation(job models.Job, selected []string) bool {
	category := job.LocationCategory()
	for _, value := range selected {
		switch value {
		case models.FilterRemote:
			if category == models.LocationRemote {
				return true
			}
		case models.FilterHybrid:
			if category == models.LocationHybrid {
				return true
			}
		case models.FilterInOffice:
			if category == models.LocationOther {
				return true
			}
		}
	}
	return false
}

func keep(jobs []models.Job, pred func(models.Job) bool) []models.Job {
	filtered := jobs[:0]
	for _, job := range jobs {
		if pred(job) {
			filtered = append(filtered, job)
		}
	}
	return filtered
}
