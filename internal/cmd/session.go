package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJJimenez/jobboard/internal/browse"
	"github.com/MrJJimenez/jobboard/internal/config"
	"github.com/MrJJimenez/jobboard/internal/dataset"
	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/pipeline"
	"github.com/MrJJimenez/jobboard/internal/source"
	"github.com/MrJJimenez/jobboard/internal/state"
)

// FilterFlags are the filter options shared by search and browse.
type FilterFlags struct {
	Company    string   `help:"Company name (case-insensitive substring)."`
	Experience string   `help:"Minimum years of experience, e.g. 3."`
	Location   []string `help:"Location categories: remote, hybrid, in-office." sep:","`
	Roles      []string `help:"Roles to include, e.g. backend,ios." sep:","`
	Salary     string   `help:"Minimum salary in LPA, e.g. 10 or 10L."`
}

func (f FilterFlags) apply(store *state.Store) error {
	updates := []struct {
		dim    state.Dimension
		values []string
	}{
		{state.DimCompany, nonBlank(f.Company)},
		{state.DimExperience, nonBlank(f.Experience)},
		{state.DimLocation, f.Location},
		{state.DimRoles, f.Roles},
		{state.DimSalary, nonBlank(f.Salary)},
	}
	for _, update := range updates {
		if len(update.values) == 0 {
			continue
		}
		if _, err := store.SetFilter(update.dim, update.values); err != nil {
			return fmt.Errorf("--%s: %w", update.dim, err)
		}
	}
	return nil
}

func nonBlank(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return []string{value}
}

// loadJobs reads the dataset from Postgres, a file, or the embedded fixture,
// in that order of preference.
func loadJobs(ctx context.Context, cfg config.Config) ([]models.Job, error) {
	switch {
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		return dataset.LoadPostgres(ctx, cfg.DatabaseURL)
	case strings.TrimSpace(cfg.DatasetPath) != "":
		return dataset.LoadFile(cfg.DatasetPath)
	default:
		return dataset.Embedded()
	}
}

// openSession builds the source, pipeline and store behind a browsing
// session. The caller closes the store.
func openSession(ctx *Context, backend string) (*browse.Session, error) {
	srcCfg := ctx.Config.Source(backend)

	var jobs []models.Job
	if len(srcCfg.Endpoints) == 0 {
		var err error
		jobs, err = loadJobs(context.Background(), ctx.Config)
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
	}

	src, err := source.New(srcCfg, jobs)
	if err != nil {
		return nil, err
	}
	ctx.Logger.Debug().Str("source", src.Name()).Int("page_size", ctx.Config.PageSizeOrDefault()).Msg("session opened")

	store := state.New(pipeline.New(src, ctx.Logger), ctx.Config.PageSizeOrDefault(), ctx.Logger)
	return browse.New(store), nil
}
