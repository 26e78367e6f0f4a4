package shared

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	AppName            = "spores"
	DefaultRedirectURI = "http://127.0.0.1:8888/callback"
	tokenCacheFile     = "token_cache.json"

	EnvClientID     = "SPORES_CLIENT_ID"
	EnvClientSecret = "SPORES_CLIENT_SECRET"
	EnvRedirectURI  = "SPORES_REDIRECT_URI"
)

const configHeader = `# Spotify application credentials
# Create an app at https://developer.spotify.com/dashboard
# redirect_uri must match the redirect URI registered in your Spotify app.
# Use 127.0.0.1; Spotify rejects "localhost".

`

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	ClientID     string     `toml:"client_id"`
	ClientSecret string     `toml:"client_secret"`
	RedirectURI  string     `toml:"redirect_uri,omitempty"`
	Auth         AuthConfig `toml:"auth"`
	API          APIConfig  `toml:"api"`
}

// AuthConfig contains OAuth flow settings.
type AuthConfig struct {
	TokenCache     string `toml:"token_cache,omitempty"`
	OpenBrowser    bool   `toml:"open_browser"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

// APIConfig contains Spotify Web API client settings.
type APIConfig struct {
	BaseURL           string  `toml:"base_url,omitempty"`
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`
}

// Redirect returns the configured redirect URI or [DefaultRedirectURI].
func (c *Config) Redirect() string {
	if c.RedirectURI == "" {
		return DefaultRedirectURI
	}
	return c.RedirectURI
}

// AuthTimeout returns how long the OAuth flow waits for the callback.
func (c *Config) AuthTimeout() time.Duration {
	if c.Auth.TimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.Auth.TimeoutSeconds) * time.Second
}

// TokenCachePath resolves the token cache location. Relative to the config file's directory unless set.
func (c *Config) TokenCachePath(configPath string) string {
	if c.Auth.TokenCache != "" {
		return c.Auth.TokenCache
	}
	return filepath.Join(filepath.Dir(configPath), tokenCacheFile)
}

// Validate reports whether the Spotify credentials are present.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret must be set", ErrMissingCredentials)
	}
	return nil
}

// Map returns the credentials in the form expected by services.NewSpotifyService.
func (c *Config) Map() map[string]string {
	return map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
		"redirect_uri":  c.Redirect(),
	}
}

// ApplyEnv overrides credentials with SPORES_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv(EnvRedirectURI); v != "" {
		c.RedirectURI = v
	}
}

// DefaultConfigPath returns <user config dir>/spores/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// LoadEnv loads a .env file from dir into the process environment.
//
// Variables already set are left untouched and a missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ReadConfig reads and parses a TOML configuration file without validating it.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	return config, nil
}

// LoadConfig reads the configuration at path, applies environment overrides, and validates credentials.
//
// A missing file is replaced with the commented template and [ErrMissingConfig] is returned so the
// user can fill in the credentials.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := CreateConfigFile(path); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: created config file at %s; fill in your Spotify credentials and run again", ErrMissingConfig, path)
	}

	if err := LoadEnv(filepath.Dir(path)); err != nil {
		return nil, err
	}

	config, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w in %s", err, path)
	}

	return config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile writes the embedded example config to path, creating parent directories.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path with a comment header.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
