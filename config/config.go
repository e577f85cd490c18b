// Package config centralises runtime configuration for the NineByFour client.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment identifies the runtime environment the client targets.
type Environment string

const (
	// EnvDev marks the development environment.
	EnvDev Environment = "dev"
	// EnvStaging marks the staging environment.
	EnvStaging Environment = "staging"
	// EnvProd marks the production environment.
	EnvProd Environment = "prod"
)

const (
	// CredentialService names the secret slot holding the session token.
	CredentialService = "com.9by4.NineByFour"
	// CredentialTokenKey keys the bearer token within the credential slot.
	CredentialTokenKey = "auth_token"
)

// DefaultCredentialPath returns where the session token lives when the
// credential_file setting is empty: the credential slot mapped into the
// user's config directory.
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve credential path: %w", err)
	}
	return filepath.Join(dir, CredentialService, CredentialTokenKey), nil
}

// PollingSettings configures the background refresh cadences.
type PollingSettings struct {
	Chat          time.Duration `yaml:"chat"`
	Unread        time.Duration `yaml:"unread"`
	Conversations time.Duration `yaml:"conversations"`
}

// APISettings aggregates transport configuration.
type APISettings struct {
	BaseURL           string        `yaml:"base_url"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	PageSize          int           `yaml:"page_size"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// TelemetrySettings gates metric export.
type TelemetrySettings struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Settings contains the client configuration tree loaded from defaults,
// an optional YAML file, and environment overrides.
type Settings struct {
	Environment    Environment       `yaml:"environment"`
	API            APISettings       `yaml:"api"`
	Polling        PollingSettings   `yaml:"polling"`
	Telemetry      TelemetrySettings `yaml:"telemetry"`
	CredentialFile string            `yaml:"credential_file"`
}

// Default returns the default client configuration.
func Default() Settings {
	return Settings{
		Environment: EnvProd,
		API: APISettings{
			BaseURL:           "https://ninebyfourapi.herokuapp.com/api",
			HTTPTimeout:       10 * time.Second,
			PageSize:          20,
			RequestsPerSecond: 0,
		},
		Polling: PollingSettings{
			Chat:          5 * time.Second,
			Unread:        10 * time.Second,
			Conversations: 5 * time.Second,
		},
		Telemetry: TelemetrySettings{
			Enabled:      false,
			OTLPEndpoint: "localhost:4318",
		},
		CredentialFile: "",
	}
}

// FromEnv loads configuration values from environment variables, overriding defaults.
func FromEnv() Settings {
	return applyEnv(Default())
}

// LoadOrDefault reads YAML configuration from path, falling back to defaults
// when the file does not exist. Environment variables override both.
// The second return value reports whether the file was found.
func LoadOrDefault(path string) (Settings, bool, error) {
	cfg := Default()
	loaded := false
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Settings{}, false, fmt.Errorf("parse config %s: %w", path, err)
			}
			loaded = true
		case errors.Is(err, os.ErrNotExist):
		default:
			return Settings{}, false, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Settings{}, loaded, err
	}
	return cfg, loaded, nil
}

// Validate checks invariants that later layers rely on.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.API.BaseURL) == "" {
		return errors.New("config: api base_url must not be empty")
	}
	if s.API.HTTPTimeout <= 0 {
		return errors.New("config: http_timeout must be positive")
	}
	if s.API.PageSize <= 0 {
		return errors.New("config: page_size must be positive")
	}
	if s.Polling.Chat <= 0 || s.Polling.Unread <= 0 || s.Polling.Conversations <= 0 {
		return errors.New("config: polling intervals must be positive")
	}
	return nil
}

func applyEnv(cfg Settings) Settings {
	if env := strings.TrimSpace(os.Getenv("NINEBYFOUR_ENV")); env != "" {
		cfg.Environment = Environment(strings.ToLower(env))
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_API_BASE_URL")); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_HTTP_TIMEOUT")); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.API.HTTPTimeout = dur
		}
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_PAGE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.PageSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_REQUESTS_PER_SECOND")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.API.RequestsPerSecond = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_CHAT_POLL_INTERVAL")); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.Polling.Chat = dur
		}
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_UNREAD_POLL_INTERVAL")); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.Polling.Unread = dur
		}
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_CONVERSATIONS_POLL_INTERVAL")); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.Polling.Conversations = dur
		}
	}
	if v := strings.TrimSpace(os.Getenv("NINEBYFOUR_CREDENTIAL_FILE")); v != "" {
		cfg.CredentialFile = v
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_ENABLED")); v != "" {
		cfg.Telemetry.Enabled = v != "false"
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
	return cfg
}
