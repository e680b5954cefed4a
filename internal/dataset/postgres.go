package dataset

import (
	"context"
	"fmt"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/jackc/pgx/v5"
)

const selectJobs = `
SELECT id, company, role, location, min_salary, max_salary, currency,
       min_experience, max_experience, description, logo_url, url
FROM jobs
ORDER BY id`

// LoadPostgres snapshots the jobs table into memory. The backend only reads
// the dataset once at startup; queries run against the returned slice.
func LoadPostgres(ctx context.Context, databaseURL string) ([]models.Job, error) {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgx.Connect: %w", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, selectJobs)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	jobs, err := pgx.CollectRows(rows, scanJob)
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}
	if err := Validate(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func scanJob(row pgx.CollectableRow) (models.Job, error) {
	var (
		job                                    models.Job
		currency, description, logoURL, jobURL *string
	)
	err := row.Scan(
		&job.ID,
		&job.Company,
		&job.Role,
		&job.Location,
		&job.MinSalary,
		&job.MaxSalary,
		&currency,
		&job.MinExperience,
		&job.MaxExperience,
		&description,
		&logoURL,
		&jobURL,
	)
	if err != nil {
		return job, err
	}
	job.Currency = deref(currency)
	job.Description = deref(description)
	job.LogoURL = deref(logoURL)
	job.URL = deref(jobURL)
	return job, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
