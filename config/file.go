package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pevans/tickernews/fetch"
	"github.com/pevans/tickernews/overview"
	"github.com/pevans/tickernews/scraper"
	"github.com/pevans/tickernews/search"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides the config
// file location.
const EnvConfigPath = "TICKERNEWS_CONFIG"

// FetchConfig represents how pages are retrieved.
type FetchConfig struct {
	Renderer  string `yaml:"renderer"` // "http" or "chrome"
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"` // Go duration, e.g. "10s"
}

// SearchConfig represents how candidate articles are discovered.
type SearchConfig struct {
	Engine       string `yaml:"engine"` // "google" or "feed"
	BaseURL      string `yaml:"base_url"`
	Domain       string `yaml:"domain"`
	MaxPages     int    `yaml:"max_pages"`
	LookbackDays int    `yaml:"lookback_days"`
	Selectors    struct {
		Result  string `yaml:"result"`
		Link    string `yaml:"link"`
		Summary string `yaml:"summary"`
	} `yaml:"selectors"`
}

// ArticleConfig represents how article pages are parsed.
type ArticleConfig struct {
	DateFormat string `yaml:"date_format"`
	Selectors  struct {
		Date  string `yaml:"date"`
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	} `yaml:"selectors"`
}

// FileConfig represents the structure of ~/.tickernews/config.yaml.
type FileConfig struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Search  SearchConfig  `yaml:"search"`
	Article ArticleConfig `yaml:"article"`
}

// Default returns the configuration used when no file exists.
func Default() *FileConfig {
	cfg := &FileConfig{}
	cfg.Fetch.Renderer = "http"
	cfg.Fetch.UserAgent = fetch.DefaultUserAgent
	cfg.Fetch.Timeout = fetch.DefaultTimeout.String()
	cfg.Search.Engine = "google"
	cfg.Search.BaseURL = search.DefaultGoogleURL
	cfg.Search.Domain = overview.DefaultDomain
	cfg.Search.MaxPages = search.DefaultMaxPages
	cfg.Search.LookbackDays = 7
	return cfg
}

// Path returns the config file location: $TICKERNEWS_CONFIG if set,
// otherwise ~/.tickernews/config.yaml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".tickernews", "config.yaml"), nil
}

// LoadConfigFile loads configuration from Path(). A missing file yields the
// defaults.
func LoadConfigFile() (*FileConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error. Returns an error if the file exists but cannot be parsed or holds
// invalid values.
func Load(path string) (*FileConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values that cannot fall back to a default.
func (c *FileConfig) Validate() error {
	switch c.Fetch.Renderer {
	case "", "http", "chrome":
	default:
		return fmt.Errorf("fetch.renderer must be http or chrome, got %q", c.Fetch.Renderer)
	}

	switch c.Search.Engine {
	case "", "google", "feed":
	default:
		return fmt.Errorf("search.engine must be google or feed, got %q", c.Search.Engine)
	}

	if c.Fetch.Timeout != "" {
		if _, err := time.ParseDuration(c.Fetch.Timeout); err != nil {
			return fmt.Errorf("fetch.timeout must be a valid duration (e.g., 10s, 1m): %w", err)
		}
	}

	if c.Search.MaxPages < 0 {
		return fmt.Errorf("search.max_pages must not be negative")
	}
	if c.Search.LookbackDays < 0 {
		return fmt.Errorf("search.lookback_days must not be negative")
	}

	return nil
}

// FetchOptions converts the fetch section.
func (c *FileConfig) FetchOptions() fetch.Options {
	timeout, _ := time.ParseDuration(c.Fetch.Timeout)
	return fetch.Options{
		UserAgent: c.Fetch.UserAgent,
		Timeout:   timeout,
	}
}

// SearchSelectors converts the search selectors, filling blanks with
// defaults.
func (c *FileConfig) SearchSelectors() scraper.SearchConfig {
	return scraper.SearchConfig{
		ResultSelector:  c.Search.Selectors.Result,
		LinkSelector:    c.Search.Selectors.Link,
		SummarySelector: c.Search.Selectors.Summary,
	}.WithDefaults()
}

// ArticleSelectors converts the article section, filling blanks with
// defaults.
func (c *FileConfig) ArticleSelectors() scraper.ArticleConfig {
	return scraper.ArticleConfig{
		DateSelector:  c.Article.Selectors.Date,
		TitleSelector: c.Article.Selectors.Title,
		BodySelector:  c.Article.Selectors.Body,
		DateFormat:    c.Article.DateFormat,
	}.WithDefaults()
}

// Lookback returns the default search window in calendar days.
func (c *FileConfig) Lookback() int {
	if c.Search.LookbackDays == 0 {
		return search.DefaultLookbackDays
	}
	return c.Search.LookbackDays
}
