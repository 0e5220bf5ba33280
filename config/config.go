package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Audio holds waveform expectations for decoded input.
type Audio struct {
	SampleRate int `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// Analysis holds the chunking and ensemble parameters.
type Analysis struct {
	ChunkSeconds   float64 `mapstructure:"chunk_seconds" yaml:"chunk_seconds"`
	OverlapSeconds float64 `mapstructure:"overlap_seconds" yaml:"overlap_seconds"`
	Runs           int     `mapstructure:"runs" yaml:"runs"`
	StorageRuns    int     `mapstructure:"storage_runs" yaml:"storage_runs"`
}

// Classifier points at the remote emotion classification service.
type Classifier struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Storage configures the S3 recording source.
type Storage struct {
	Bucket       string `mapstructure:"bucket" yaml:"bucket"`
	Region       string `mapstructure:"region" yaml:"region"`
	MinSizeBytes int64  `mapstructure:"min_size_bytes" yaml:"min_size_bytes"`
}

type Root struct {
	LogLevel   string     `mapstructure:"log_level" yaml:"log_level"`
	Audio      Audio      `mapstructure:"audio" yaml:"audio"`
	Analysis   Analysis   `mapstructure:"analysis" yaml:"analysis"`
	Classifier Classifier `mapstructure:"classifier" yaml:"classifier"`
	Storage    Storage    `mapstructure:"storage" yaml:"storage"`
	Paths      struct {
		Outputs string `mapstructure:"outputs" yaml:"outputs"`
	} `mapstructure:"paths" yaml:"paths"`
}

// Load builds the effective config: built-in defaults, then an optional
// config/<env>/config.yaml (env selected by CONFIG_ENV, default "dev"),
// then MOODLINE_* environment overrides.
func Load() (*Root, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("analysis.chunk_seconds", 1.0)
	v.SetDefault("analysis.overlap_seconds", 0.5)
	v.SetDefault("analysis.runs", 5)
	v.SetDefault("analysis.storage_runs", 3)
	v.SetDefault("classifier.url", "http://localhost:8600")
	v.SetDefault("classifier.timeout", 30*time.Second)
	// Empty default so viper knows the key; AutomaticEnv only surfaces
	// env values through Unmarshal for keys it has seen.
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.min_size_bytes", 2048)
	v.SetDefault("paths.outputs", "outputs")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join("config", env))
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults and env carry the config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("MOODLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Root) validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Analysis.ChunkSeconds <= 0 {
		return fmt.Errorf("config: chunk_seconds must be positive, got %g", c.Analysis.ChunkSeconds)
	}
	if c.Analysis.OverlapSeconds < 0 || c.Analysis.OverlapSeconds >= c.Analysis.ChunkSeconds {
		return fmt.Errorf("config: overlap_seconds must be in [0, chunk_seconds), got %g", c.Analysis.OverlapSeconds)
	}
	if c.Analysis.Runs < 1 || c.Analysis.StorageRuns < 1 {
		return fmt.Errorf("config: runs and storage_runs must be at least 1")
	}
	return nil
}

// Dump renders the effective config as YAML.
func (c *Root) Dump() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
