// Package dataset loads the job records served by the mock backend.
package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

//go:embed jobs.json
var fixture []byte

// Embedded returns the built-in fixture.
func Embedded() ([]models.Job, error) {
	jobs, err := Decode(fixture)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return jobs, nil
}

// LoadFile reads a JSON (or JSON5) array of jobs from path.
func LoadFile(path string) ([]models.Job, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jobs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}
	return jobs, nil
}

// Decode parses and validates a job array.
func Decode(data []byte) ([]models.Job, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Job{}, nil
	}
	var jobs []models.Job
	if err := json5.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	if err := Validate(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Validate checks that every job has a unique, non-empty ID.
func Validate(jobs []models.Job) error {
	ids := make(map[string]int, len(jobs))
	for idx, job := range jobs {
		id := strings.TrimSpace(job.ID)
		if id == "" {
			return fmt.Errorf("job[%d]: id is required", idx)
		}
		if prev, exists := ids[id]; exists {
			return fmt.Errorf("job[%d]: duplicate id %q (first at job[%d])", idx, id, prev)
		}
		ids[id] = idx
	}
	return nil
}
