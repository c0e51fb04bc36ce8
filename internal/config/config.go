// Package config loads fixture-bot settings from the environment.
//
// Values are read once at startup, optionally from a .env file in the working
// directory, and passed explicitly to the components that need them.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/fixture-bot/internal/scraper"
)

// EnvProduction is the APP_ENV value that turns on the kickoff gate.
const EnvProduction = "production"

// Credentials are the four OAuth1 values for the Twitter account
type Credentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Complete reports whether every credential is set.
func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// Config holds application configuration
type Config struct {
	Environment string
	Twitter     Credentials
	TeamURL     string
	BaseURL     string
	PrimaryTeam string
	TeamHandle  string
	Timezone    string
	Schedule    string
	LogLevel    string
	LogPretty   bool
	DryRun      bool
}

// Load reads configuration from environment variables. It does not validate; callers
// apply command-line overrides first and then call Validate.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Twitter: Credentials{
			APIKey:       getEnv("TWITTER_API_KEY", ""),
			APISecret:    getEnv("TWITTER_API_SECRET", ""),
			AccessToken:  getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessSecret: getEnv("TWITTER_ACCESS_SECRET", ""),
		},
		TeamURL:     getEnv("TEAM_URL", scraper.TeamPageURL),
		BaseURL:     getEnv("SITE_BASE_URL", scraper.BaseURL),
		PrimaryTeam: getEnv("PRIMARY_TEAM", "Manchester Utd"),
		TeamHandle:  getEnv("TEAM_HANDLE", "ManUtd"),
		Timezone:    getEnv("TEAM_TIMEZONE", "Europe/London"),
		Schedule:    getEnv("SCHEDULE", "@every 100m"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getEnvAsBool("LOG_PRETTY", false),
		DryRun:      getEnvAsBool("DRY_RUN", false),
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.TeamURL == "" {
		return errors.New("TEAM_URL is required")
	}
	if c.BaseURL == "" {
		return errors.New("SITE_BASE_URL is required")
	}
	if c.PrimaryTeam == "" {
		return errors.New("PRIMARY_TEAM is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if !c.DryRun && !c.Twitter.Complete() {
		return errors.New("missing required Twitter credentials (TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN, TWITTER_ACCESS_SECRET)")
	}
	return nil
}

// IsProduction reports whether the kickoff gate should be enforced.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), EnvProduction)
}

// Location returns the team's home timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading TEAM_TIMEZONE %q", c.Timezone)
	}
	return loc, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
