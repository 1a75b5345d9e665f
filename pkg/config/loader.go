package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/departures/pkg/util"
	"gopkg.in/yaml.v3"
)

const DefaultEnvFile = ".env"

type Source struct {
	// Optional YAML file, an error when set but missing
	File string

	// Optional dotenv file, silently skipped when missing
	EnvFile string

	// Process environment, read from os.Environ when nil
	Environment map[string]string

	// Applied last, usually from CLI flags
	Overrides []func(*Config)
}

// Load builds and validates the configuration. A returned error is a
// configuration error and nothing else should run.
func Load(source Source) (Config, error) {
	cfg := Defaults()

	if source.File != "" {
		if err := loadYAML(source.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	environment, err := mergedEnvironment(source)
	if err != nil {
		return Config{}, err
	}

	if err := applyEnvironment(environment, &cfg); err != nil {
		return Config{}, err
	}

	for _, override := range source.Overrides {
		override(&cfg)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	log.Debug().
		Str("endpoint", cfg.Endpoint).
		Str("netex", cfg.NetexFile).
		Str("dataset", cfg.DatasetID).
		Int("limit", cfg.Limit).
		Msg("Loaded configuration")

	return cfg, nil
}

func Validate(cfg Config) error {
	v := validator.New()

	if err := v.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var problems []string
			for _, fieldError := range validationErrors {
				problems = append(problems, fmt.Sprintf("%s failed '%s'", fieldError.Field(), fieldError.Tag()))
			}

			return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
		}

		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.PreviewInterval != "" {
		if _, err := iso8601.ParseISO8601(cfg.PreviewInterval); err != nil {
			return fmt.Errorf("invalid configuration: preview interval %q: %w", cfg.PreviewInterval, err)
		}
	}

	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// mergedEnvironment layers the real environment over the dotenv file.
func mergedEnvironment(source Source) (map[string]string, error) {
	environment := map[string]string{}

	envFile := source.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	fileValues, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}
	for key, value := range fileValues {
		environment[key] = value
	}

	processEnvironment := source.Environment
	if processEnvironment == nil {
		processEnvironment = util.GetEnvironmentVariables()
	}
	for key, value := range processEnvironment {
		environment[key] = value
	}

	return environment, nil
}

func applyEnvironment(env map[string]string, cfg *Config) error {
	setString := func(key string, target *string) {
		if value := env[key]; value != "" {
			*target = value
		}
	}
	setInt := func(key string, target *int) error {
		value := env[key]
		if value == "" {
			return nil
		}

		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid configuration: %s=%q is not a number", key, value)
		}
		*target = parsed

		return nil
	}

	setString("SIRI_ENDPOINT", &cfg.Endpoint)
	setString("NETEX_FILE", &cfg.NetexFile)
	setString("DATASET_ID", &cfg.DatasetID)
	setString("SIRI_REQUESTOR_REF", &cfg.RequestorRef)
	setString("DEPARTURES_PREVIEW_INTERVAL", &cfg.PreviewInterval)
	setString("DEPARTURES_STOP_FILTER", &cfg.StopFilter)

	if err := setInt("DEPARTURES_LIMIT", &cfg.Limit); err != nil {
		return err
	}
	if err := setInt("DEPARTURES_PAGE_SIZE", &cfg.PageSize); err != nil {
		return err
	}
	if err := setInt("DEPARTURES_MAX_RETRIES", &cfg.MaxRetries); err != nil {
		return err
	}

	if value := env["DEPARTURES_TIMEOUT"]; value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid configuration: DEPARTURES_TIMEOUT=%q: %w", value, err)
		}
		cfg.Timeout = timeout
	}

	return nil
}
