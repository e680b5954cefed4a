package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrJJimenez/jobboard/internal/models"
)

// Query string keys understood by the jobs endpoint.
const (
	KeyCompany    = "company"
	KeyExperience = "experience"
	KeyLocation   = "location"
	KeyRole       = "role"
	KeySalary     = "salary"
	KeyPage       = "page"
	KeySize       = "size"
)

// EncodeValues renders a filter and page as URL query values.
func EncodeValues(filter models.Filter, page models.Page) url.Values {
	values := url.Values{}
	if company := strings.TrimSpace(filter.Company); company != "" {
		values.Set(KeyCompany, filter.Company)
	}
	for _, exp := range filter.Experience {
		values.Add(KeyExperience, strconv.Itoa(exp))
	}
	for _, loc := range filter.Locations {
		values.Add(KeyLocation, loc)
	}
	for _, role := range filter.Roles {
		values.Add(KeyRole, role)
	}
	for _, salary := range filter.Salary {
		values.Add(KeySalary, strconv.Itoa(salary))
	}
	values.Set(KeyPage, strconv.Itoa(page.Number))
	values.Set(KeySize, strconv.Itoa(page.Size))
	return values
}

// DecodeValues parses query values produced by EncodeValues. Missing page
// and size default to the first page of DefaultPageSize.
func DecodeValues(values url.Values) (models.Filter, models.Page, error) {
	var filter models.Filter
	page := models.Page{Number: 1, Size: models.DefaultPageSize}

	filter.Company = values.Get(KeyCompany)

	experience, err := ParseInts(values[KeyExperience])
	if err != nil {
		return filter, page, fmt.Errorf("%s: %w", KeyExperience, err)
	}
	filter.Experience = experience

	locations, err := ParseLocations(values[KeyLocation])
	if err != nil {
		return filter, page, err
	}
	filter.Locations = locations

	filter.Roles = SplitList(values[KeyRole])

	salary, err := ParseInts(values[KeySalary])
	if err != nil {
		return filter, page, fmt.Errorf("%s: %w", KeySalary, err)
	}
	filter.Salary = salary

	if raw := values.Get(KeyPage); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, page, fmt.Errorf("%s must be a positive integer, got %q", KeyPage, raw)
		}
		page.Number = n
	}
	if raw := values.Get(KeySize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, page, fmt.Errorf("%s must be a positive integer, got %q", KeySize, raw)
		}
		page.Size = n
	}

	return filter, page, nil
}

// ParseInts parses values such as "3" or "10L", keeping the leading digits.
// Comma-separated entries are split first.
func ParseInts(raw []string) ([]int, error) {
	var out []int
	for _, value := range SplitList(raw) {
		n, err := LeadingInt(value)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// LeadingInt parses the run of digits at the start of value.
func LeadingInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return strconv.Atoi(value[:end])
}

// ParseLocations normalizes location filter values and rejects unknown ones.
func ParseLocations(raw []string) ([]string, error) {
	var out []string
	for _, value := range SplitList(raw) {
		value = strings.ToLower(value)
		switch value {
		case models.FilterRemote, models.FilterHybrid, models.FilterInOffice:
			out = append(out, value)
		case "office", "onsite", "on-site":
			out = append(out, models.FilterInOffice)
		default:
			return nil, fmt.Errorf("unknown location %q", value)
		}
	}
	return out, nil
}

// SplitList flattens repeated and comma-separated values, dropping blanks.
func SplitList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}
