package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingRequired is returned by Validate when a required setting is empty.
var ErrMissingRequired = errors.New("missing required configuration")

const (
	ModeListing  = "listing"
	ModeManifest = "manifest"
	ModeFeed     = "feed"

	BackendLeMUR  = "lemur"
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

type Config struct {
	AssemblyAI  AssemblyAIConfig  `yaml:"assemblyai"`
	Storage     StorageConfig     `yaml:"storage"`
	Source      SourceConfig      `yaml:"source"`
	Speaker     SpeakerConfig     `yaml:"speaker"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type AssemblyAIConfig struct {
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type StorageConfig struct {
	Bucket        string        `yaml:"bucket"`
	Prefix        string        `yaml:"prefix"`
	Region        string        `yaml:"region"`
	Endpoint      string        `yaml:"endpoint"`
	PresignExpiry time.Duration `yaml:"presign_expiry"`
}

type SourceConfig struct {
	Mode          string `yaml:"mode"`
	FeedURL       string `yaml:"feed_url"`
	FeedPodcastID string `yaml:"feed_podcast_id"`
	WatchDir      string `yaml:"watch_dir"`
}

type SpeakerConfig struct {
	Backend     string `yaml:"backend"`
	Model       string `yaml:"model"`
	Instruction string `yaml:"instruction"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OutputConfig struct {
	Docx         bool   `yaml:"docx"`
	ReportPrefix string `yaml:"report_prefix"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	ItemTimeout   time.Duration `yaml:"item_timeout"`
}

func (c *Config) Validate() error {
	if c.AssemblyAI.APIKey == "" {
		return fmt.Errorf("%w: assemblyai.api_key (ASSEMBLYAI_API_KEY)", ErrMissingRequired)
	}
	c.Storage.Bucket = strings.TrimPrefix(strings.TrimSpace(c.Storage.Bucket), "s3://")
	if c.Storage.Bucket == "" {
		return fmt.Errorf("%w: storage.bucket (S3_BUCKET_LOCATION)", ErrMissingRequired)
	}

	if c.Source.Mode == "" {
		c.Source.Mode = ModeListing
	}
	switch c.Source.Mode {
	case ModeListing, ModeManifest:
	case ModeFeed:
		if c.Source.FeedURL == "" {
			return fmt.Errorf("%w: source.feed_url (FEED_URL) for feed mode", ErrMissingRequired)
		}
		if c.Source.FeedPodcastID == "" {
			return fmt.Errorf("%w: source.feed_podcast_id (FEED_PODCAST_ID) for feed mode", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("source.mode %q is not one of listing, manifest, feed", c.Source.Mode)
	}

	if c.Speaker.Backend == "" {
		c.Speaker.Backend = BackendLeMUR
	}
	switch c.Speaker.Backend {
	case BackendLeMUR:
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: gemini.api_key (GEMINI_API_KEY) for gemini backend", ErrMissingRequired)
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: openai.api_key (OPENAI_API_KEY) for openai backend", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("speaker.backend %q is not one of lemur, gemini, openai", c.Speaker.Backend)
	}

	if c.AssemblyAI.BaseURL == "" {
		c.AssemblyAI.BaseURL = "https://api.assemblyai.com"
	}
	if c.AssemblyAI.PollInterval <= 0 {
		c.AssemblyAI.PollInterval = 3 * time.Second
	}
	if c.Storage.PresignExpiry <= 0 {
		c.Storage.PresignExpiry = time.Hour
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 200
	}
	if c.Speaker.Model == "" {
		c.Speaker.Model = "anthropic/claude-3-5-sonnet"
	}
	if c.Speaker.Instruction == "" {
		c.Speaker.Instruction = "Your task is to infer the speaker's name from the speaker-labelled transcript"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
