package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/network"
	"github.com/MrJJimenez/jobboard/internal/query"
)

const (
	NameRemote = "remote"
	jobsPath   = "/jobs"
	maxBody    = 8 << 20
)

// Remote fetches pages from a jobboard backend over HTTP.
type Remote struct {
	client *network.Client
}

func NewRemote(client *network.Client) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Name() string {
	return NameRemote
}

func (r *Remote) Fetch(ctx context.Context, filter models.Filter, page models.Page) (models.ResultSet, error) {
	resp, err := r.client.Get(ctx, jobsPath, query.EncodeValues(filter, page))
	if err != nil {
		return models.ResultSet{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return models.ResultSet{}, fmt.Errorf("%w: http %d: %s", ErrUnavailable, resp.StatusCode, errorMessage(resp.Body))
	}
	return decodeResultSet(resp.Body)
}

func decodeResultSet(body io.Reader) (models.ResultSet, error) {
	var result models.ResultSet
	if err := json.NewDecoder(io.LimitReader(body, maxBody)).Decode(&result); err != nil {
		return models.ResultSet{}, fmt.Errorf("decode jobs response: %w", err)
	}
	if result.Data == nil {
		result.Data = []models.Job{}
	}
	if len(result.Data) > result.Pagination.Total {
		return models.ResultSet{}, fmt.Errorf("decode jobs response: %d jobs exceed total %d", len(result.Data), result.Pagination.Total)
	}
	return result, nil
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil || payload.Error == "" {
		return "no error message"
	}
	return payload.Error
}
