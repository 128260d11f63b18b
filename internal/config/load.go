package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Option adjusts the configuration after file and environment are applied.
type Option func(*Config)

// WithSourceMode overrides the source mode; empty keeps the configured one.
func WithSourceMode(mode string) Option {
	return func(c *Config) {
		if mode != "" {
			c.Source.Mode = mode
		}
	}
}

// Load reads the YAML file at path (skipped when it does not exist), applies
// environment overrides and opts, and validates the result.
func Load(path string, opts ...Option) (*Config, error) {
	return load(path, os.LookupEnv, opts...)
}

func load(path string, lookup lookupFunc, opts ...Option) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

// applyEnv overrides file values with any environment variable that is set.
func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"ASSEMBLYAI_API_KEY":  &c.AssemblyAI.APIKey,
		"ASSEMBLYAI_BASE_URL": &c.AssemblyAI.BaseURL,
		"S3_BUCKET_LOCATION":  &c.Storage.Bucket,
		"S3_BUCKET_PREFIX":    &c.Storage.Prefix,
		"AWS_REGION":          &c.Storage.Region,
		"S3_ENDPOINT":         &c.Storage.Endpoint,
		"SOURCE_MODE":         &c.Source.Mode,
		"FEED_URL":            &c.Source.FeedURL,
		"FEED_PODCAST_ID":     &c.Source.FeedPodcastID,
		"WATCH_DIR":           &c.Source.WatchDir,
		"SPEAKER_BACKEND":     &c.Speaker.Backend,
		"SPEAKER_MODEL":       &c.Speaker.Model,
		"GEMINI_API_KEY":      &c.Gemini.APIKey,
		"GEMINI_MODEL":        &c.Gemini.Model,
		"OPENAI_API_KEY":      &c.OpenAI.APIKey,
		"OPENAI_MODEL":        &c.OpenAI.Model,
		"REPORT_PREFIX":       &c.Output.ReportPrefix,
		"LOG_LEVEL":           &c.Logging.Level,
		"LOG_FORMAT":          &c.Logging.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookupSet(lookup, "MAX_CONCURRENT_JOBS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MAX_CONCURRENT_JOBS: %w", err)
		}
		c.Performance.MaxConcurrent = n
	}

	durations := map[string]*time.Duration{
		"ITEM_TIMEOUT":             &c.Performance.ItemTimeout,
		"ASSEMBLYAI_POLL_INTERVAL": &c.AssemblyAI.PollInterval,
	}
	for key, dst := range durations {
		if v, ok := lookupSet(lookup, key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	if v, ok := lookupSet(lookup, "OUTPUT_DOCX"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("OUTPUT_DOCX: %w", err)
		}
		c.Output.Docx = b
	}

	return nil
}

// lookupSet is lookup that also treats a blank value as unset.
func lookupSet(lookup lookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
