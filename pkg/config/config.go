// Package config assembles the runtime configuration once, from defaults, an
// optional YAML file, a .env file, the process environment and CLI overrides,
// in that order.
package config

import (
	"time"

	iso8601 "github.com/senseyeio/duration"
)

const (
	DefaultRequestorRef = "opendata"
	DefaultLimit        = 5
	DefaultPageSize     = 10
	DefaultTimeout      = 30 * time.Second
)

type Config struct {
	Endpoint     string `yaml:"endpoint" validate:"required,url"`
	NetexFile    string `yaml:"netex_file" validate:"required"`
	DatasetID    string `yaml:"dataset_id" validate:"required"`
	RequestorRef string `yaml:"requestor_ref" validate:"required"`

	Limit    int `yaml:"limit" validate:"gte=1"`
	PageSize int `yaml:"page_size" validate:"gte=1"`

	// ISO-8601 duration such as PT30M
	PreviewInterval string `yaml:"preview_interval"`
	StopFilter      string `yaml:"stop_filter"`

	MaxRetries int           `yaml:"max_retries" validate:"gte=0"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
}

func Defaults() Config {
	return Config{
		RequestorRef: DefaultRequestorRef,
		Limit:        DefaultLimit,
		PageSize:     DefaultPageSize,
		Timeout:      DefaultTimeout,
	}
}

// Preview returns the parsed preview interval, ok is false when none is set.
func (c Config) Preview() (interval iso8601.Duration, ok bool) {
	if c.PreviewInterval == "" {
		return iso8601.Duration{}, false
	}

	interval, err := iso8601.ParseISO8601(c.PreviewInterval)
	if err != nil {
		return iso8601.Duration{}, false
	}

	return interval, true
}
