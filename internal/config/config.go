package config

import (
	"net/url"
	"time"

	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Discord  DiscordConfig
	Redis    RedisConfig
	DND5E    DND5EConfig
	Sheet    SheetConfig
	Server   ServerConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token           string `env:"DISCORD_TOKEN"`
	AppID           string `env:"DISCORD_APP_ID"`
	GuildID         string `env:"DISCORD_GUILD_ID"`          // Optional: for guild-specific commands
	NoticeChannelID string `env:"DISCORD_NOTICE_CHANNEL_ID"` // Optional: where save/load notices are posted
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `env:"REDIS_URL"` // Empty keeps characters in memory
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	BaseURL string `env:"DND5E_API_URL" envDefault:"https://www.dnd5eapi.co/api"`
	Verify  bool   `env:"DND5E_VERIFY"  envDefault:"false"`
}

// SheetConfig describes the character endpoint the bot edits
type SheetConfig struct {
	APIURL      string        `env:"SHEET_API_URL"      envDefault:"http://localhost:8080/api/default/character"`
	HTTPTimeout time.Duration `env:"SHEET_HTTP_TIMEOUT" envDefault:"30s"`
	CatalogPath string        `env:"SHEET_CATALOG_PATH"` // Optional: JSON catalog replacing the 5e default
}

// ServerConfig holds configuration for the character endpoint server
type ServerConfig struct {
	Addr            string        `env:"SHEETD_ADDR"             envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHEETD_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses configuration from the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to parse environment")
	}

	if _, err := url.ParseRequestURI(cfg.Sheet.APIURL); err != nil {
		return nil, dnderr.Validationf("SHEET_API_URL is not a valid URL: %q", cfg.Sheet.APIURL)
	}
	if cfg.Sheet.HTTPTimeout <= 0 {
		return nil, dnderr.Validationf("SHEET_HTTP_TIMEOUT must be positive")
	}

	return cfg, nil
}

// ValidateBot checks the settings the Discord bot cannot start without
func (c *Config) ValidateBot() error {
	if c.Discord.Token == "" {
		return dnderr.Validationf("DISCORD_TOKEN is required")
	}
	if c.Discord.AppID == "" {
		return dnderr.Validationf("DISCORD_APP_ID is required")
	}
	return nil
}
