package network

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestNewRotatorValidatesEndpoints(t *testing.T) {
	if _, err := NewRotator(nil, time.Minute); !errors.Is(err, ErrNoEndpoints) {
		t.Fatalf("NewRotator(nil) error = %v, want ErrNoEndpoints", err)
	}
	if _, err := NewRotator([]string{"ftp://example.com"}, time.Minute); err == nil {
		t.Fatalf("NewRotator(ftp) error = nil, want error")
	}
}

func TestRotatorRoundRobinAndParking(t *testing.T) {
	rotator, err := NewRotator([]string{"http://a.test/", " http://b.test/api/ ", ""}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rotator.now = func() time.Time { return now }

	first, _ := rotator.Next()
	second, _ := rotator.Next()
	if first.Host != "a.test" || second.Host != "b.test" {
		t.Fatalf("Next() = %s, %s; want a.test, b.test", first, second)
	}
	if second.Path != "/api" {
		t.Fatalf("Path = %q, want /api", second.Path)
	}

	rotator.Report(first, http.StatusServiceUnavailable)
	rotator.Report(second, http.StatusNotFound)
	for i := 0; i < 3; i++ {
		got, err := rotator.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got.Host != "b.test" {
			t.Fatalf("Next() = %s, want b.test while a.test is parked", got)
		}
	}

	rotator.Report(second, http.StatusTooManyRequests)
	if _, err := rotator.Next(); !errors.Is(err, ErrNoEndpoints) {
		t.Fatalf("Next() error = %v, want ErrNoEndpoints", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := rotator.Next(); err != nil {
		t.Fatalf("Next() after cool-down error = %v", err)
	}
}

func TestResolveURL(t *testing.T) {
	endpoint, _ := url.Parse("http://localhost:8080/v1")
	got := ResolveURL(endpoint, "/jobs", url.Values{"page": {"2"}})
	want := "http://localhost:8080/v1/jobs?page=2"
	if got != want {
		t.Fatalf("ResolveURL() = %q, want %q", got, want)
	}
}
