// Package pipeline runs a single fetch against a source with cooperative
// cancellation.
package pipeline

import (
	"context"
	"errors"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/source"
	"github.com/rs/zerolog"
)

var (
	// ErrCancelled means a newer request superseded this one.
	ErrCancelled = errors.New("fetch cancelled")
	// ErrQueryFailed is the generic failure marker; the cause is only logged.
	ErrQueryFailed = errors.New("failed to load jobs")
)

// Mode tells whether a fetch replaces the current results or extends them.
type Mode int

const (
	Replace Mode = iota
	Append
)

func (m Mode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// Pipeline holds no per-request state; every Begin call is independent.
type Pipeline struct {
	source source.Source
	logger zerolog.Logger
}

func New(src source.Source, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		source: src,
		logger: logger.With().Str("component", "pipeline").Str("source", src.Name()).Logger(),
	}
}

type outcome struct {
	result models.ResultSet
	err    error
}

// Begin fetches page for filter and blocks until the source answers or ctx is
// cancelled. A cancelled ctx always yields ErrCancelled, even if the source
// answered at the same moment; any other failure yields ErrQueryFailed.
func (p *Pipeline) Begin(ctx context.Context, mode Mode, filter models.Filter, page models.Page) (models.ResultSet, error) {
	log := p.logger.With().Stringer("mode", mode).Int("page", page.Number).Int("size", page.Size).Logger()
	log.Debug().Msg("fetch started")

	done := make(chan outcome, 1)
	go func() {
		result, err := p.source.Fetch(ctx, filter, page)
		done <- outcome{result: result, err: err}
	}()

	var out outcome
	select {
	case <-ctx.Done():
		log.Debug().Msg("fetch cancelled")
		return models.ResultSet{}, ErrCancelled
	case out = <-done:
	}

	if ctx.Err() != nil {
		log.Debug().Msg("fetch cancelled")
		return models.ResultSet{}, ErrCancelled
	}
	if out.err != nil {
		log.Debug().Err(out.err).Msg("fetch failed")
		return models.ResultSet{}, ErrQueryFailed
	}

	log.Debug().Int("count", len(out.result.Data)).Int("total", out.result.Pagination.Total).Msg("fetch finished")
	return out.result, nil
}
