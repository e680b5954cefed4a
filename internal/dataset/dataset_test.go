package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbedded(t *testing.T) {
	jobs, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	if len(jobs) == 0 {
		t.Fatalf("Embedded() returned no jobs")
	}
	for _, job := range jobs {
		if job.Company == "" || job.Role == "" {
			t.Fatalf("job missing company or role: %+v", job)
		}
	}
}

func TestLoadFileAcceptsJSON5(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json5")
	content := `[
  // comments are allowed
  {id: "a", company: "Acme", role: "backend", location: "remote", min_salary: 12,},
  {id: "b", company: "Beta", role: "ios", location: "hybrid"},
]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	jobs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}
	if jobs[0].MinSalary == nil || *jobs[0].MinSalary != 12 {
		t.Fatalf("MinSalary = %v, want 12", jobs[0].MinSalary)
	}
	if jobs[1].MinSalary != nil {
		t.Fatalf("MinSalary = %v, want nil", *jobs[1].MinSalary)
	}
}

func TestDecodeRejectsDuplicateIDs(t *testing.T) {
	_, err := Decode([]byte(`[{"id":"x","company":"A"},{"id":"x","company":"B"}]`))
	if err == nil {
		t.Fatalf("Decode() error = nil, want error")
	}
	if !strings.Contains(err.Error(), `duplicate id "x"`) {
		t.Fatalf("Decode() error = %q, want duplicate id message", err.Error())
	}
}

func TestDecodeRejectsMissingID(t *testing.T) {
	_, err := Decode([]byte(`[{"company":"A"}]`))
	if err == nil || !strings.Contains(err.Error(), "id is required") {
		t.Fatalf("Decode() error = %v, want id is required", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	jobs, err := Decode([]byte("  \n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("len(jobs) = %d, want 0", len(jobs))
	}
}
