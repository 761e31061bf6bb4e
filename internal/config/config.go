package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL      = "http://localhost:3001/api"
	DefaultFrontendURL = "http://localhost:3000"
	DefaultListenAddr  = ":3000"
)

// Config holds client settings. The file is ~/.medshare/config.yaml; MEDSHARE_* environment
// variables (optionally from a .env file) override it.
type Config struct {
	APIURL      string `yaml:"api_url" json:"api_url"`           // Backend REST API base URL
	FrontendURL string `yaml:"frontend_url" json:"frontend_url"` // Public base URL of the web front-end
	Environment string `yaml:"environment" json:"environment"`   // "production" enables Secure cookies

	ListenAddr string `yaml:"listen_addr" json:"listen_addr"` // Web front-end listen address
	Secret     string `yaml:"secret" json:"-"`                // Flash cookie sealing secret

	ConfirmDelete bool `yaml:"confirm_delete" json:"confirm_delete"` // Ask before destructive CLI actions
	Trace         bool `yaml:"trace" json:"trace"`                   // Export API client spans and metrics to stdout

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	logPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "logs", "medshare.log")
	}

	return &Config{
		APIURL:        DefaultAPIURL,
		FrontendURL:   DefaultFrontendURL,
		Environment:   "development",
		ListenAddr:    DefaultListenAddr,
		ConfirmDelete: true,
		LogLevel:      "INFO",
		LogFile:       logPath,
	}
}

// IsProduction reports whether cookies must carry the Secure attribute
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Dir returns ~/.medshare
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".medshare"), nil
}

// Path returns the config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file (defaults when missing) and applies environment overrides
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit config file path
func LoadFile(path string) (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.APIURL = getEnv("MEDSHARE_API_URL", c.APIURL)
	c.FrontendURL = getEnv("MEDSHARE_FRONTEND_URL", c.FrontendURL)
	c.Environment = getEnv("MEDSHARE_ENV", c.Environment)
	c.ListenAddr = getEnv("MEDSHARE_LISTEN", c.ListenAddr)
	c.Secret = getEnv("MEDSHARE_SECRET", c.Secret)
	c.ConfirmDelete = getBoolEnv("MEDSHARE_CONFIRM_DELETE", c.ConfirmDelete)
	c.Trace = getBoolEnv("MEDSHARE_TRACE", c.Trace)
	c.LogLevel = getEnv("MEDSHARE_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("MEDSHARE_LOG_FILE", c.LogFile)
	c.LogConsole = getBoolEnv("MEDSHARE_LOG_CONSOLE", c.LogConsole)
}

// Save writes the config to ~/.medshare/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold the sealing secret
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
