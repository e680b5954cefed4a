package source

import (
	"time"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/network"
)

const endpointCoolDown = 30 * time.Second

// New picks the source for cfg: a Remote backend when endpoints are
// configured, otherwise the in-process Memory source over jobs.
func New(cfg models.SourceConfig, jobs []models.Job) (Source, error) {
	if len(cfg.Endpoints) == 0 {
		return NewMemory(jobs, cfg.Latency), nil
	}

	rotator, err := network.NewRotator(cfg.Endpoints, endpointCoolDown)
	if err != nil {
		return nil, err
	}
	client, err := network.NewClient(rotator, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return NewRemote(client), nil
}
