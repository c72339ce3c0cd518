package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SnippetGroup styles snippets whose command pattern matches one of Patterns
type SnippetGroup struct {
	// Name is the display name of this group
	Name string `yaml:"name"`

	// Color is the catppuccin color name (e.g., "red", "yellow", "green", "mauve")
	Color string `yaml:"color"`

	// Bold makes the text bold
	Bold bool `yaml:"bold"`

	// Patterns is a list of command patterns that belong to this group (supports wildcards)
	Patterns []string `yaml:"patterns"`
}

// VariablesConfig controls the template engine
type VariablesConfig struct {
	// BackslashEscape keeps `\[KEY]` verbatim instead of substituting it
	BackslashEscape bool `yaml:"backslash_escape"`

	// Defaults seeds the user variables at startup
	Defaults map[string]string `yaml:"defaults"`
}

// LogConfig mirrors the rotating log writer settings
type LogConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"`
	MaxSize  int    `yaml:"max_size"`
	MaxFiles int    `yaml:"max_files"`
	MaxAge   int    `yaml:"max_age"`
	Compress bool   `yaml:"compress"`
}

// Config holds the application configuration
type Config struct {
	// Database is the path of the SQLite snippet database
	Database string `yaml:"database"`

	// Theme is the color theme to use (mocha, macchiato, frappe, latte)
	Theme string `yaml:"theme"`

	// SearchModes lists the enabled search modes in cycle order ("command", "comment")
	SearchModes []string `yaml:"search_modes"`

	// ResultLimit caps the number of rows a search returns (0 = unlimited)
	ResultLimit int `yaml:"result_limit"`

	// Watch reloads results when the database file changes on disk
	Watch bool `yaml:"watch"`

	Variables VariablesConfig `yaml:"variables"`

	// Groups defines styling groups for snippets (checked in order, first match wins)
	Groups []SnippetGroup `yaml:"groups"`

	Log LogConfig `yaml:"log"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Database:    "snips.db",
		Theme:       "mocha",
		SearchModes: []string{"command", "comment"},
		ResultLimit: 0,
		Watch:       true,
		Variables: VariablesConfig{
			Defaults: map[string]string{},
		},
		Groups: []SnippetGroup{
			{
				Name:  "dangerous",
				Color: "red",
				Bold:  true,
				Patterns: []string{
					"rm:*",
					"sudo:*",
					"chmod:*",
					"chown:*",
					"dd:*",
					"mkfs:*",
					"kill:*",
					"pkill:*",
					"killall:*",
				},
			},
			{
				Name:     "network",
				Color:    "peach",
				Patterns: []string{"nc:*", "ncat:*", "nmap:*", "curl:*", "wget:*", "ssh:*", "scp:*"},
			},
			{
				Name:     "vcs",
				Color:    "yellow",
				Patterns: []string{"git:*"},
			},
			{
				Name:     "containers",
				Color:    "lavender",
				Patterns: []string{"docker:*", "kubectl:*", "podman:*"},
			},
			{
				Name:     "unmatched",
				Color:    "text",
				Patterns: []string{"*"},
			},
		},
		Log: LogConfig{
			Enabled:  true,
			MaxSize:  10,
			MaxFiles: 5,
			MaxAge:   30,
			Compress: true,
		},
	}
}

// Load reads the config from a YAML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //nolint:gosec // config path from known locations
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Variables.Defaults == nil {
		cfg.Variables.Defaults = map[string]string{}
	}

	return cfg, nil
}

// LoadFromDefaultPath attempts to load config from standard locations
func LoadFromDefaultPath() (*Config, error) {
	// Check in order: current dir, ~/.config/redox/, XDG_CONFIG_HOME
	paths := []string{
		"redox.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "redox", "config.yaml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "redox", "config.yaml"))
	}

	for _, path := range paths {
		cleanPath := filepath.Clean(path)
		if _, err := os.Stat(cleanPath); err == nil { //nolint:gosec // config path from known locations
			return Load(cleanPath)
		}
	}

	return DefaultConfig(), nil
}

// GetGroup returns the first matching snippet group for a pattern, or nil
func (c *Config) GetGroup(pattern string) *SnippetGroup {
	for i := range c.Groups {
		group := &c.Groups[i]
		if group.Matches(pattern) {
			return group
		}
	}
	return nil
}

// Matches returns true if the pattern matches this group
func (g *SnippetGroup) Matches(pattern string) bool {
	for _, p := range g.Patterns {
		if matchPattern(p, pattern) {
			return true
		}
	}
	return false
}

// matchPattern checks if a pattern matches (supports a single * wildcard)
func matchPattern(pattern, value string) bool {
	if pattern == value {
		return true
	}

	// e.g., "git:*" matches "git:push:*" and "git:clone:*"
	if strings.Contains(pattern, "*") {
		parts := strings.SplitN(pattern, "*", 2)
		if len(parts) == 2 {
			return strings.HasPrefix(value, parts[0]) && strings.HasSuffix(value, parts[1])
		}
	}

	return false
}

// global config instance
var globalConfig *Config

// Global returns the global config instance, loading it if necessary
func Global() *Config {
	if globalConfig == nil {
		cfg, err := LoadFromDefaultPath()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal sets the global config instance (useful for testing)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}
