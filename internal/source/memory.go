package source

import (
	"context"
	"time"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/query"
)

const NameMemory = "memory"

// Memory serves a fixed dataset after an artificial delay standing in for
// network latency.
type Memory struct {
	jobs    []models.Job
	latency time.Duration
}

func NewMemory(jobs []models.Job, latency time.Duration) *Memory {
	return &Memory{jobs: jobs, latency: latency}
}

func (m *Memory) Name() string {
	return NameMemory
}

func (m *Memory) Len() int {
	return len(m.jobs)
}

func (m *Memory) Fetch(ctx context.Context, filter models.Filter, page models.Page) (models.ResultSet, error) {
	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.ResultSet{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return models.ResultSet{}, err
	}
	return query.FilterAndPaginate(m.jobs, filter, page), nil
}
