// Package source provides the dataset collaborators the fetch pipeline calls.
package source

import (
	"context"
	"errors"

	"github.com/MrJJimenez/jobboard/internal/models"
)

var ErrUnavailable = errors.New("source unavailable")

// Source returns one filtered page of jobs. Implementations must return
// promptly with ctx.Err() once ctx is cancelled; they need not stop any
// internal work.
type Source interface {
	Name() string
	Fetch(ctx context.Context, filter models.Filter, page models.Page) (models.ResultSet, error)
}
