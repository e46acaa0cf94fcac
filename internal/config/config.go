package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// SnapshotConfig selects and configures the durable snapshot backend
type SnapshotConfig struct {
	Driver    string `yaml:"driver" validate:"required,oneof=file sqlite s3"`
	Path      string `yaml:"path,omitempty"`
	Bucket    string `yaml:"bucket,omitempty" validate:"required_if=Driver s3"`
	Key       string `yaml:"key,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	PathStyle bool   `yaml:"pathStyle,omitempty"`
}

// WorkingHoursConfig is the default daily booking window applied to every
// technician
type WorkingHoursConfig struct {
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

// RecurrenceOverride pins a job's occurrence expansion to an explicit RRULE,
// for schedules whose source rows under-describe their cadence
type RecurrenceOverride struct {
	JobID string `yaml:"jobId" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL  string             `yaml:"databaseUrl" validate:"required"`
	Snapshot     SnapshotConfig     `yaml:"snapshot"`
	WorkingHours WorkingHoursConfig `yaml:"workingHours"`
	// OccurrenceHorizonWeeks bounds recurrence expansion in the jobs view
	OccurrenceHorizonWeeks int                  `yaml:"occurrenceHorizonWeeks,omitempty" validate:"omitempty,min=1,max=52"`
	RecurrenceOverrides    []RecurrenceOverride `yaml:"recurrenceOverrides,omitempty" validate:"dive"`
}

// RecurrenceRuleFor returns the override rule for a job, if one is configured
func (c *Config) RecurrenceRuleFor(jobID string) (string, bool) {
	for _, o := range c.RecurrenceOverrides {
		if o.JobID == jobID {
			return o.RRule, true
		}
	}
	return "", false
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func defaults() *Config {
	return &Config{
		Snapshot:               SnapshotConfig{Driver: "file", Path: "dispatchboard_snapshot.json"},
		WorkingHours:           WorkingHoursConfig{Start: "08:00", End: "17:00"},
		OccurrenceHorizonWeeks: 12,
	}
}

// Load loads and validates the configuration from dispatchboard.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct, driver-specific fields, and
// rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// The file and sqlite drivers both need a path; s3 is covered by the
	// struct tags
	if (cfg.Snapshot.Driver == "file" || cfg.Snapshot.Driver == "sqlite") && cfg.Snapshot.Path == "" {
		return fmt.Errorf("config validation failed: snapshot.path is required for the %s driver", cfg.Snapshot.Driver)
	}

	// Validate rrule syntax for each override
	for i, override := range cfg.RecurrenceOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurrenceOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for dispatchboard.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "dispatchboard.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
