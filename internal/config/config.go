// Package config provides unified configuration loading for mallas.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

// Config contains all mallas configuration settings.
type Config struct {
	// Analysis contains the tunable analysis parameters.
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`

	// Storage contains database and dataset locations.
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Logging contains settings for operational and decision logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// AnalysisConfig holds the default parameters for analysis runs. Command
// flags override these per invocation.
type AnalysisConfig struct {
	// EquivalenceThreshold is the minimum similarity for subject grouping.
	// Range: 0.1 to 0.8.
	EquivalenceThreshold float64 `json:"equivalence_threshold" yaml:"equivalence_threshold"`

	// ClusterThreshold is the minimum combined similarity for career
	// clustering. Range: 0.1 to 0.8.
	ClusterThreshold float64 `json:"cluster_threshold" yaml:"cluster_threshold"`

	// NameWeight is the career-name share of the combined clustering score.
	// Range: 0.5 to 1.0.
	NameWeight float64 `json:"name_weight" yaml:"name_weight"`

	// Advanced enables curriculum-content scoring in career clustering.
	Advanced bool `json:"advanced" yaml:"advanced"`

	// Keywords are importance terms that count double in subject similarity.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// ExtraStopwords extend the built-in Spanish stopword list.
	ExtraStopwords []string `json:"extra_stopwords,omitempty" yaml:"extra_stopwords,omitempty"`

	// Workers bounds similarity matrix parallelism (0 = all CPUs).
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// StorageConfig locates the curricula database and default dataset.
type StorageConfig struct {
	// DBPath is the SQLite database file. Defaults to ~/.mallas/mallas.db.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	// DatasetPath is the default dataset JSON file for import.
	DatasetPath string `json:"dataset_path,omitempty" yaml:"dataset_path,omitempty"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default) or "debug".
	// "debug" enables decision logging to ~/.mallas/decisions.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			EquivalenceThreshold: models.DefaultThreshold,
			ClusterThreshold:     models.DefaultThreshold,
			NameWeight:           0.7,
			Advanced:             false,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// StateDir returns the per-user state directory (~/.mallas), or the current
// directory when the home directory cannot be determined.
func StateDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mallas"
	}
	return filepath.Join(homeDir, ".mallas")
}

func defaultDBPath() string {
	return filepath.Join(StateDir(), "mallas.db")
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.mallas/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	configPath := filepath.Join(StateDir(), "config.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil {
		fileConfig, loadErr := LoadFromFile(configPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := models.ValidateThreshold(c.Analysis.EquivalenceThreshold); err != nil {
		return fmt.Errorf("equivalence_threshold: %w", err)
	}
	if err := models.ValidateThreshold(c.Analysis.ClusterThreshold); err != nil {
		return fmt.Errorf("cluster_threshold: %w", err)
	}

	if c.Analysis.NameWeight < 0.5 || c.Analysis.NameWeight > 1.0 {
		return fmt.Errorf("name_weight must be between 0.5 and 1.0, got %f", c.Analysis.NameWeight)
	}

	if c.Analysis.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Analysis.Workers)
	}

	validLevels := map[string]bool{"info": true, "debug": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("MALLAS_EQUIVALENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.EquivalenceThreshold = f
		}
	}

	if v := os.Getenv("MALLAS_CLUSTER_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.ClusterThreshold = f
		}
	}

	if v := os.Getenv("MALLAS_NAME_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.NameWeight = f
		}
	}

	if v := os.Getenv("MALLAS_ADVANCED"); v != "" {
		config.Analysis.Advanced = v == "true" || v == "1"
	}

	if v := os.Getenv("MALLAS_KEYWORDS"); v != "" {
		config.Analysis.Keywords = splitList(v)
	}

	if v := os.Getenv("MALLAS_EXTRA_STOPWORDS"); v != "" {
		config.Analysis.ExtraStopwords = splitList(v)
	}

	if v := os.Getenv("MALLAS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Analysis.Workers = n
		}
	}

	if v := os.Getenv("MALLAS_DB_PATH"); v != "" {
		config.Storage.DBPath = v
	}

	if v := os.Getenv("MALLAS_DATASET_PATH"); v != "" {
		config.Storage.DatasetPath = v
	}

	if v := os.Getenv("MALLAS_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// splitList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
