package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// rawAPISettings mirrors APISettings with durations as strings so YAML
// files can carry values like "10s".
type rawAPISettings struct {
	BaseURL           *string  `yaml:"base_url"`
	HTTPTimeout       *string  `yaml:"http_timeout"`
	PageSize          *int     `yaml:"page_size"`
	RequestsPerSecond *float64 `yaml:"requests_per_second"`
}

// UnmarshalYAML decodes API settings, leaving absent fields untouched so
// defaults survive partial files.
func (s *APISettings) UnmarshalYAML(node *yaml.Node) error {
	var raw rawAPISettings
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.BaseURL != nil {
		s.BaseURL = *raw.BaseURL
	}
	if raw.HTTPTimeout != nil {
		dur, err := parseDuration("api.http_timeout", *raw.HTTPTimeout)
		if err != nil {
			return err
		}
		s.HTTPTimeout = dur
	}
	if raw.PageSize != nil {
		s.PageSize = *raw.PageSize
	}
	if raw.RequestsPerSecond != nil {
		s.RequestsPerSecond = *raw.RequestsPerSecond
	}
	return nil
}

type rawPollingSettings struct {
	Chat          *string `yaml:"chat"`
	Unread        *string `yaml:"unread"`
	Conversations *string `yaml:"conversations"`
}

// UnmarshalYAML decodes polling cadences, leaving absent fields untouched.
func (s *PollingSettings) UnmarshalYAML(node *yaml.Node) error {
	var raw rawPollingSettings
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Chat != nil {
		dur, err := parseDuration("polling.chat", *raw.Chat)
		if err != nil {
			return err
		}
		s.Chat = dur
	}
	if raw.Unread != nil {
		dur, err := parseDuration("polling.unread", *raw.Unread)
		if err != nil {
			return err
		}
		s.Unread = dur
	}
	if raw.Conversations != nil {
		dur, err := parseDuration("polling.conversations", *raw.Conversations)
		if err != nil {
			return err
		}
		s.Conversations = dur
	}
	return nil
}

func parseDuration(field, value string) (time.Duration, error) {
	dur, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", field, err)
	}
	return dur, nil
}
