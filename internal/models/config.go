package models

import "time"

// SourceConfig contains runtime options shared by dataset sources.
type SourceConfig struct {
	Endpoints []string
	Timeout   time.Duration
	Latency   time.Duration
}
