package network

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

var ErrNoEndpoints = errors.New("no backend endpoints available")

// Rotator hands out backend base URLs round-robin, skipping endpoints that
// recently answered with an overload status.
type Rotator struct {
	endpoints   []*url.URL
	parkFor     time.Duration
	parkedUntil map[string]time.Time
	index       int
	now         func() time.Time
	mu          sync.Mutex
}

func NewRotator(raw []string, parkFor time.Duration) (*Rotator, error) {
	rotator := &Rotator{
		parkFor:     parkFor,
		parkedUntil: map[string]time.Time{},
		now:         time.Now,
	}

	for _, endpoint := range raw {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			continue
		}
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, err
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
		}
		u.Path = strings.TrimRight(u.Path, "/")
		rotator.endpoints = append(rotator.endpoints, u)
	}

	if len(rotator.endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	return rotator, nil
}

func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.index
	for {
		endpoint := r.endpoints[r.index]
		r.index = (r.index + 1) % len(r.endpoints)

		if !r.isParked(endpoint) {
			return endpoint, nil
		}

		if r.index == start {
			return nil, ErrNoEndpoints
		}
	}
}

// Report parks endpoint when status signals that it is overloaded or down.
func (r *Rotator) Report(endpoint *url.URL, status int) {
	if endpoint == nil {
		return
	}
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable:
	default:
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.parkedUntil[endpoint.String()] = r.now().Add(r.parkFor)
}

func (r *Rotator) isParked(endpoint *url.URL) bool {
	until, ok := r.parkedUntil[endpoint.String()]
	if !ok {
		return false
	}
	if r.now().After(until) {
		delete(r.parkedUntil, endpoint.String())
		return false
	}
	return true
}
