package models

// DefaultPageSize is the number of jobs requested per page.
const DefaultPageSize = 20

// Page addresses a 1-based page of results.
type Page struct {
	Number int
	Size   int
}

// Next returns the page following p with the same size.
func (p Page) Next() Page {
	return Page{Number: p.Number + 1, Size: p.Size}
}

// Pagination is the metadata returned alongside a page of jobs.
type Pagination struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// ResultSet is an ordered slice of matching jobs plus pagination metadata.
type ResultSet struct {
	Data       []Job      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Exhausted reports whether every matching job has been loaded.
func (r ResultSet) Exhausted() bool {
	return len(r.Data) >= r.Pagination.Total
}

// Current returns the page this result set was produced for.
func (r ResultSet) Current() Page {
	return Page{Number: r.Pagination.Page, Size: r.Pagination.Size}
}
