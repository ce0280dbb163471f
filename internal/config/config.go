package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bot           BotConfig           `yaml:"bot"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summary       SummaryConfig       `yaml:"summary"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}

type BotConfig struct {
	// Token comes from the BOT_TOKEN environment variable, never from the file.
	Token string `yaml:"-"`

	// TargetThreadID, when non-zero, restricts processing to that thread;
	// messages from any other thread are silently ignored.
	TargetThreadID int64 `yaml:"target_thread_id"`
}

type TranscriptionConfig struct {
	// APIKey comes from the TRANSCRIPTION_API_KEY environment variable.
	APIKey      string `yaml:"-"`
	Endpoint    string `yaml:"endpoint"`
	Model       string `yaml:"model"`
	MaxAttempts int    `yaml:"max_attempts"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

type SummaryConfig struct {
	// APIKey comes from OPENAI_API_KEY or GEMINI_API_KEY, depending on Provider.
	APIKey      string `yaml:"-"`
	Provider    string `yaml:"provider"`
	Endpoint    string `yaml:"endpoint"`
	Model       string `yaml:"model"`
	MaxAttempts int    `yaml:"max_attempts"`
	TimeoutSec  int    `yaml:"timeout_sec"`

	// ExportDir, when set, receives a .docx copy of every delivered summary.
	ExportDir string `yaml:"export_dir"`
}

type PathsConfig struct {
	Temp   string `yaml:"temp"`
	Inbox  string `yaml:"inbox"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads the YAML config file, overlays credentials from the environment
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv pulls credentials from the environment. Which summary key is read
// depends on the configured provider.
func (c *Config) applyEnv() {
	c.Bot.Token = os.Getenv("BOT_TOKEN")
	c.Transcription.APIKey = os.Getenv("TRANSCRIPTION_API_KEY")

	switch c.Summary.Provider {
	case "gemini":
		c.Summary.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		c.Summary.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

func (c *Config) Validate() error {
	switch c.Summary.Provider {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("summary.provider must be \"openai\" or \"gemini\", got %q", c.Summary.Provider)
	}

	var missing []string
	if c.Bot.Token == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.Transcription.APIKey == "" {
		missing = append(missing, "TRANSCRIPTION_API_KEY")
	}
	if c.Summary.APIKey == "" {
		if c.Summary.Provider == "gemini" {
			missing = append(missing, "GEMINI_API_KEY")
		} else {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required credentials: %s", strings.Join(missing, ", "))
	}

	if c.Transcription.Endpoint == "" {
		c.Transcription.Endpoint = "https://api.fireworks.ai/inference/v1/audio/transcriptions"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-v3"
	}
	if c.Transcription.MaxAttempts == 0 {
		c.Transcription.MaxAttempts = 3
	}
	if c.Transcription.TimeoutSec == 0 {
		c.Transcription.TimeoutSec = 300
	}

	if c.Summary.Provider == "" {
		c.Summary.Provider = "openai"
	}
	if c.Summary.Endpoint == "" {
		c.Summary.Endpoint = "https://api.openai.com/v1"
	}
	if c.Summary.Model == "" {
		if c.Summary.Provider == "gemini" {
			c.Summary.Model = "gemini-2.5-flash"
		} else {
			c.Summary.Model = "gpt-4.1-nano"
		}
	}
	if c.Summary.MaxAttempts == 0 {
		c.Summary.MaxAttempts = 3
	}
	if c.Summary.TimeoutSec == 0 {
		c.Summary.TimeoutSec = 120
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
