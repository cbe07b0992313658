package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Ollama       OllamaConfig       `yaml:"ollama"`
	Ticketmaster TicketmasterConfig `yaml:"ticketmaster"`
	Eventbrite   EventbriteConfig   `yaml:"eventbrite"`
	Output       OutputConfig       `yaml:"output"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type OllamaConfig struct {
	BaseURL        string        `yaml:"base_url"`
	PlannerModel   string        `yaml:"planner_model"`
	ComposerModel  string        `yaml:"composer_model"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	Timeout        time.Duration `yaml:"timeout"` // Per chat call, planner and composer alike
}

type TicketmasterConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	MaxPages int           `yaml:"max_pages"`
	PageSize int           `yaml:"page_size"`
	Timeout  time.Duration `yaml:"timeout"`
}

type EventbriteConfig struct {
	BaseURL        string        `yaml:"base_url"`
	CardSelector   string        `yaml:"card_selector"`   // Event card container on listing pages
	LinkSelector   string        `yaml:"link_selector"`   // Anchor inside a card
	DetailSelector string        `yaml:"detail_selector"` // Detail container on event pages
	SettleTimeout  time.Duration `yaml:"settle_timeout"`  // Wait for client-side rendering
	DetailWorkers  int           `yaml:"detail_workers"`
	FetchDetails   bool          `yaml:"fetch_details"`
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
}

type OutputConfig struct {
	File string `yaml:"file"`
}

type TelegramConfig struct {
	Token          string  `yaml:"token"`
	UpdateTimeout  int     `yaml:"update_timeout"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	config.applyEnvOverrides()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Ollama.PlannerModel == "" {
		c.Ollama.PlannerModel = "llama3.1:latest"
	}
	if c.Ollama.ComposerModel == "" {
		c.Ollama.ComposerModel = c.Ollama.PlannerModel
	}
	if c.Ollama.MaxRetries <= 0 {
		c.Ollama.MaxRetries = 3
	}
	if c.Ollama.RetryBaseDelay <= 0 {
		c.Ollama.RetryBaseDelay = time.Second
	}
	if c.Ticketmaster.BaseURL == "" {
		c.Ticketmaster.BaseURL = "https://app.ticketmaster.com/discovery/v2/events.json"
	}
	if c.Ticketmaster.MaxPages <= 0 {
		c.Ticketmaster.MaxPages = 5
	}
	if c.Ticketmaster.PageSize <= 0 {
		c.Ticketmaster.PageSize = 20
	}
	if c.Ticketmaster.Timeout <= 0 {
		c.Ticketmaster.Timeout = 30 * time.Second
	}
	if c.Eventbrite.BaseURL == "" {
		c.Eventbrite.BaseURL = "https://www.eventbrite.com/d"
	}
	if c.Eventbrite.CardSelector == "" {
		c.Eventbrite.CardSelector = ".event-card-details"
	}
	if c.Eventbrite.LinkSelector == "" {
		c.Eventbrite.LinkSelector = "a.event-card-link"
	}
	if c.Eventbrite.DetailSelector == "" {
		c.Eventbrite.DetailSelector = ".event-details"
	}
	if c.Eventbrite.SettleTimeout <= 0 {
		c.Eventbrite.SettleTimeout = 3 * time.Second
	}
	if c.Eventbrite.DetailWorkers <= 0 {
		c.Eventbrite.DetailWorkers = 3
	}
	if c.Eventbrite.Timeout <= 0 {
		c.Eventbrite.Timeout = 30 * time.Second
	}
	if c.Output.File == "" {
		c.Output.File = "output.txt"
	}
	if c.Telegram.UpdateTimeout <= 0 {
		c.Telegram.UpdateTimeout = 60
	}
}

// applyEnvOverrides keeps secrets out of committed configs.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TICKETMASTER_API_KEY"); v != "" {
		c.Ticketmaster.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.Ollama.BaseURL = v
	}
}
