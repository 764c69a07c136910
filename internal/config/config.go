// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the XDG data directory
const AppName = "portfolio"

// DefaultRelayEndpoint is the third-party form relay the contact form posts to
const DefaultRelayEndpoint = "https://api.web3forms.com/submit"

// Export formats understood by the render command
const (
	FormatPDF      = "pdf"
	FormatLaTeX    = "tex"
	FormatMarkdown = "md"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Profile   string `json:"profile,omitempty" yaml:"profile,omitempty"`     // Profile data file
	Projects  string `json:"projects,omitempty" yaml:"projects,omitempty"`   // Showcase catalog file
	Template  string `json:"template,omitempty" yaml:"template,omitempty"`   // LaTeX template override
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Output
	FileName     string   `json:"file_name,omitempty" yaml:"file_name,omitempty"` // Fixed PDF download name
	Formats      []string `json:"formats,omitempty" yaml:"formats,omitempty"`
	MaxPages     int      `json:"max_pages,omitempty" yaml:"max_pages,omitempty"`
	CreationDate string   `json:"creation_date,omitempty" yaml:"creation_date,omitempty"` // RFC 3339; pins PDF timestamps

	// Server
	Port           int    `json:"port,omitempty" yaml:"port,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // sqlite://, file: or postgres:// URL
	RelayEndpoint  string `json:"relay_endpoint,omitempty" yaml:"relay_endpoint,omitempty"`
	RelayAccessKey string `json:"relay_access_key,omitempty" yaml:"relay_access_key,omitempty"`
	DefaultTheme   string `json:"default_theme,omitempty" yaml:"default_theme,omitempty"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Profile:       filepath.Join("data", "profile.example.json"),
		Projects:      filepath.Join("data", "projects.example.json"),
		OutputDir:     ".",
		Formats:       []string{FormatPDF},
		MaxPages:      2,
		Port:          8080,
		DatabaseURL:   "sqlite://" + DefaultDatabasePath(),
		RelayEndpoint: DefaultRelayEndpoint,
		DefaultTheme:  "light",
	}
}

// DefaultDatabasePath is the SQLite file under the XDG data directory
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

// LoadConfig loads configuration from a JSON, YAML or YML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("config error: 'max_pages' must be non-negative")
	}

	for _, f := range c.Formats {
		switch f {
		case FormatPDF, FormatLaTeX, FormatMarkdown:
		default:
			return fmt.Errorf("config error: unknown format %q (want pdf, tex or md)", f)
		}
	}

	switch c.DefaultTheme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("config error: 'default_theme' must be light or dark")
	}

	if _, err := c.CreationTime(); err != nil {
		return fmt.Errorf("config error: 'creation_date': %w", err)
	}

	// Validate file paths exist (if specified)
	for label, path := range map[string]string{"profile": c.Profile, "projects": c.Projects, "template": c.Template} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", label, path)
		}
	}

	return nil
}

// CreationTime parses CreationDate; an empty value yields the zero time
func (c *Config) CreationTime() (time.Time, error) {
	if c.CreationDate == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, c.CreationDate)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Projects == "" {
		result.Projects = defaults.Projects
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.FileName == "" {
		result.FileName = defaults.FileName
	}
	if result.CreationDate == "" {
		result.CreationDate = defaults.CreationDate
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RelayEndpoint == "" {
		result.RelayEndpoint = defaults.RelayEndpoint
	}
	if result.RelayAccessKey == "" {
		result.RelayAccessKey = defaults.RelayAccessKey
	}
	if result.DefaultTheme == "" {
		result.DefaultTheme = defaults.DefaultTheme
	}

	if len(result.Formats) == 0 {
		result.Formats = append([]string(nil), defaults.Formats...)
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides deployment settings from the environment
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be a number: %w", err)
		}
		c.Port = port
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("RELAY_ENDPOINT"); v != "" {
		c.RelayEndpoint = v
	}
	if v := getenv("RELAY_ACCESS_KEY"); v != "" {
		c.RelayAccessKey = v
	}
	return nil
}
