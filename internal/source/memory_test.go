package source

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MrJJimenez/jobboard/internal/models"
)

func testJobs(n int) []models.Job {
	jobs := make([]models.Job, 0, n)
	for i := 1; i <= n; i++ {
		jobs = append(jobs, models.Job{ID: fmt.Sprintf("j%d", i), Company: "Acme", Role: "backend", Location: "remote"})
	}
	return jobs
}

func TestMemoryFetch(t *testing.T) {
	src := NewMemory(testJobs(25), 0)
	got, err := src.Fetch(context.Background(), models.Filter{Roles: []string{"backend"}}, models.Page{Number: 2, Size: 20})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got.Data) != 5 || got.Pagination.Total != 25 {
		t.Fatalf("Fetch() = %d jobs / total %d, want 5 / 25", len(got.Data), got.Pagination.Total)
	}
}

func TestMemoryFetchHonoursCancellation(t *testing.T) {
	src := NewMemory(testJobs(3), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := src.Fetch(ctx, models.Filter{}, models.Page{Number: 1, Size: 20})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Fetch() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Fetch() did not return after cancellation")
	}
}

func TestMemoryFetchAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory(testJobs(1), 0).Fetch(ctx, models.Filter{}, models.Page{Number: 1, Size: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestNewWithoutEndpointsIsMemory(t *testing.T) {
	src, err := New(models.SourceConfig{Latency: time.Millisecond}, testJobs(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if src.Name() != NameMemory {
		t.Fatalf("Name() = %q, want %q", src.Name(), NameMemory)
	}
}

func TestNewRejectsBadEndpoint(t *testing.T) {
	if _, err := New(models.SourceConfig{Endpoints: []string{"localhost:8080"}}, nil); err == nil {
		t.Fatalf("New() error = nil, want error for endpoint without scheme")
	}
}
