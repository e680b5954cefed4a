package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MrJJimenez/jobboard/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "jobboard"
	ConfigFileName = "config.json"
)

// Config holds the settings shared by the backend and the browsing commands.
type Config struct {
	BackendURLs []string `json:"backend_urls"`
	PageSize    int      `json:"page_size"`
	LatencyMS   int      `json:"latency_ms"`
	ListenAddr  string   `json:"listen_addr"`
	DatasetPath string   `json:"dataset_path"`
	DatabaseURL string   `json:"database_url"`
}

func DefaultConfig() Config {
	return Config{
		BackendURLs: splitCSV(envString("JOBBOARD_BACKEND", "")),
		PageSize:    envInt("JOBBOARD_PAGE_SIZE", models.DefaultPageSize),
		LatencyMS:   envInt("JOBBOARD_LATENCY_MS", 2000),
		ListenAddr:  envString("JOBBOARD_LISTEN_ADDR", ":8080"),
		DatasetPath: envString("JOBBOARD_DATASET", ""),
		DatabaseURL: envString("JOBBOARD_DATABASE_URL", ""),
	}
}

// Latency is the artificial delay the in-process source waits before answering.
func (c Config) Latency() time.Duration {
	if c.LatencyMS <= 0 {
		return 0
	}
	return time.Duration(c.LatencyMS) * time.Millisecond
}

func (c Config) PageSizeOrDefault() int {
	if c.PageSize <= 0 {
		return models.DefaultPageSize
	}
	return c.PageSize
}

// Source builds the dataset source settings, preferring backend URLs given
// on the command line over the configured ones.
func (c Config) Source(backendFlag string) models.SourceConfig {
	endpoints := c.BackendURLs
	if strings.TrimSpace(backendFlag) != "" {
		endpoints = splitCSV(backendFlag)
	}
	return models.SourceConfig{
		Endpoints: endpoints,
		Latency:   c.Latency(),
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing or blank file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// InitDir writes a default config.json into dir if it doesn't already exist.
func InitDir(dir string) ([]string, error) {
	var created []string

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg.BackendURLs == nil {
		cfg.BackendURLs = []string{}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
