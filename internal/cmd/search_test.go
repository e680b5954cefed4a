package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrJJimenez/jobboard/internal/config"
	"github.com/MrJJimenez/jobboard/internal/export"
	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/MrJJimenez/jobboard/internal/state"
	"github.com/MrJJimenez/jobboard/internal/ui"
	"github.com/rs/zerolog"
)

func testContext(pageSize int) (*Context, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Context{
		Out:    &out,
		Err:    &errOut,
		UI:     ui.New(&out, &errOut, ui.ColorNever, true),
		Config: config.Config{PageSize: pageSize, LatencyMS: 0},
		Logger: zerolog.Nop(),
	}, &out, &errOut
}

func decodeJobs(t *testing.T, data []byte) []models.Job {
	t.Helper()
	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, data)
	}
	return jobs
}

func TestResolveFormatRespectsGlobalFlags(t *testing.T) {
	ctx := &Context{Out: io.Discard, JSONOutput: true}
	got, err := resolveFormat(ctx, "", "jobs.json")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatJSON {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatJSON)
	}

	ctx = &Context{Out: io.Discard, PlainText: true}
	got, err = resolveFormat(ctx, "md", "")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatTSV {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatTSV)
	}

	ctx = &Context{Out: io.Discard}
	got, err = resolveFormat(ctx, "", "jobs.csv")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatCSV {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatCSV)
	}
}

func TestSearchLoadsRequestedPages(t *testing.T) {
	ctx, out, errOut := testContext(20)
	ctx.JSONOutput = true

	cmd := &SearchCmd{Pages: 2}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	jobs := decodeJobs(t, out.Bytes())
	if len(jobs) != 40 {
		t.Fatalf("len(jobs) = %d, want 40", len(jobs))
	}
	if jobs[0].ID != "job-001" || jobs[39].ID != "job-040" {
		t.Fatalf("jobs span %s..%s, want job-001..job-040", jobs[0].ID, jobs[39].ID)
	}
	if !strings.Contains(errOut.String(), "summary: shown=40 total=60 pages=2 more=true") {
		t.Fatalf("summary = %q", errOut.String())
	}
}

func TestSearchStopsWhenExhausted(t *testing.T) {
	ctx, out, _ := testContext(20)
	ctx.JSONOutput = true

	cmd := &SearchCmd{FilterFlags: FilterFlags{Roles: []string{"backend"}}, Pages: 3}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	jobs := decodeJobs(t, out.Bytes())
	if len(jobs) != 7 {
		t.Fatalf("len(jobs) = %d, want 7", len(jobs))
	}
	for _, job := range jobs {
		if job.Role != "backend" {
			t.Fatalf("job %s role = %q, want backend", job.ID, job.Role)
		}
	}
}

func TestSearchRejectsBadFilter(t *testing.T) {
	ctx, _, _ := testContext(20)
	cmd := &SearchCmd{FilterFlags: FilterFlags{Location: []string{"moon"}}, Pages: 1}
	err := cmd.Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "--location") {
		t.Fatalf("Run() error = %v, want --location error", err)
	}
}

func TestSearchWritesOutputFile(t *testing.T) {
	ctx, out, _ := testContext(20)
	path := filepath.Join(t.TempDir(), "jobs.csv")

	cmd := &SearchCmd{FilterFlags: FilterFlags{Location: []string{"remote"}}, Pages: 1, Output: path}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("stdout = %q, want empty when writing to a file", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 16 {
		t.Fatalf("len(lines) = %d, want header + 15 remote jobs", len(lines))
	}
}

func TestFormatSearchSummary(t *testing.T) {
	if got := formatSearchSummary(state.Snapshot{}); got != "summary: shown=0 total=0 pages=0" {
		t.Fatalf("formatSearchSummary(empty) = %q", got)
	}

	result := models.ResultSet{
		Data:       make([]models.Job, 25),
		Pagination: models.Pagination{Page: 2, Size: 20, Total: 25},
	}
	got := formatSearchSummary(state.Snapshot{Status: state.Succeeded, Result: &result})
	if got != "summary: shown=25 total=25 pages=2 more=false" {
		t.Fatalf("formatSearchSummary() = %q", got)
	}
}
