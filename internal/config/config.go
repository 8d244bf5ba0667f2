package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
)

// Defaults
const (
	DefaultBaseURL         = "https://search.openfoodfacts.org"
	DefaultIndex           = "off"
	DefaultPageSize        = 10
	DefaultDisplayedPages  = 5
	DefaultDebounceWait    = 300 * time.Millisecond
	DefaultSuggestionSize  = 5
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultRetryDelay      = time.Second
	DefaultResultTemplate  = `{{field . "code"}}  {{field . "product_name"}}  {{field . "brands"}}`
	configDirName          = "searchalicious"
	configFileName         = "config.toml"
	defaultFilePermissions = 0o644
	defaultDirPermissions  = 0o755
)

// Duration is a time.Duration written as a string ("300ms", "30s") in TOML
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config represents the application configuration
type Config struct {
	BaseURL           string         `toml:"base_url"`
	TaxonomiesBaseURL string         `toml:"taxonomies_base_url"`
	Index             string         `toml:"index"`
	Langs             []string       `toml:"langs"`
	PageSize          int            `toml:"page_size"`
	DisplayedPages    int            `toml:"displayed_pages"`
	DebounceWait      Duration       `toml:"debounce_wait"`
	HTTP              HTTPSettings   `toml:"http"`
	Searches          []SearchConfig `toml:"searches"`
}

// HTTPSettings represents the HTTP client configuration
type HTTPSettings struct {
	Timeout    Duration `toml:"timeout"`
	MaxRetries int      `toml:"max_retries"`
	RetryDelay Duration `toml:"retry_delay"`
}

// SearchConfig describes one named search and the widgets bound to it
type SearchConfig struct {
	Name               string              `toml:"name"`
	Facets             []string            `toml:"facets"`
	Taxonomies         []string            `toml:"taxonomies"`
	FacetTaxonomies    map[string]string   `toml:"facet_taxonomies"`
	SuggestionSize     int                 `toml:"suggestion_size"`
	ResultTemplate     string              `toml:"result_template,omitempty"`
	ResultTemplateFile string              `toml:"result_template_file,omitempty"`
	SortOptions        []domain.SortOption `toml:"sort_options"`
	AutoRefreshSort    bool                `toml:"auto_refresh_sort"`
	Charts             []string            `toml:"charts"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service reading the given file, or the
// default location when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/searchalicious/config.toml
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		var err error
		configDir, err = os.UserConfigDir()
		if err != nil {
			// Fallback to home directory
			configDir, err = os.UserHomeDir()
			if err != nil {
				configDir = "."
			}
			configDir = filepath.Join(configDir, ".config")
		}
	}
	return filepath.Join(configDir, configDirName, configFileName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to the defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfiguration("failed to parse config "+path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.resolveTemplates(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, defaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// resolveTemplates reads result_template_file entries, relative to the config directory
func (c *Config) resolveTemplates(baseDir string) error {
	for i := range c.Searches {
		s := &c.Searches[i]
		if s.ResultTemplateFile == "" {
			continue
		}
		if s.ResultTemplate != "" {
			return errors.NewConfiguration(fmt.Sprintf("search %q defines both result_template and result_template_file", s.Name))
		}
		path := s.ResultTemplateFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.NewConfiguration(fmt.Sprintf("failed to read result template of search %q", s.Name), err)
		}
		s.ResultTemplate = string(data)
	}
	return nil
}

// ApplyDefaults fills every unset value with its default
func (c *Config) ApplyDefaults() {
	if c.TaxonomiesBaseURL == "" {
		c.TaxonomiesBaseURL = c.BaseURL
	}
	if len(c.Langs) == 0 {
		c.Langs = []string{"en"}
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.DisplayedPages == 0 {
		c.DisplayedPages = DefaultDisplayedPages
	}
	if c.DebounceWait.Duration == 0 {
		c.DebounceWait.Duration = DefaultDebounceWait
	}
	if c.HTTP.Timeout.Duration == 0 {
		c.HTTP.Timeout.Duration = DefaultHTTPTimeout
	}
	if c.HTTP.RetryDelay.Duration == 0 {
		c.HTTP.RetryDelay.Duration = DefaultRetryDelay
	}
	if len(c.Searches) == 0 {
		c.Searches = []SearchConfig{{}}
	}
	for i := range c.Searches {
		s := &c.Searches[i]
		if s.Name == "" && i == 0 {
			s.Name = domain.DefaultSearchName
		}
		if s.SuggestionSize == 0 {
			s.SuggestionSize = DefaultSuggestionSize
		}
		if s.ResultTemplate == "" && s.ResultTemplateFile == "" {
			s.ResultTemplate = DefaultResultTemplate
		}
	}
}

// Validate checks the configuration for invalid combinations
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.NewConfiguration("base_url is required")
	}
	if c.PageSize < 0 {
		return errors.NewConfiguration("page_size must not be negative")
	}
	if c.DisplayedPages < 1 {
		return errors.NewConfiguration("displayed_pages must be at least 1")
	}
	if c.HTTP.MaxRetries < 0 {
		return errors.NewConfiguration("http.max_retries must not be negative")
	}

	names := make(map[string]bool, len(c.Searches))
	for _, s := range c.Searches {
		if s.Name == "" {
			return errors.NewConfiguration("every search needs a name")
		}
		if names[s.Name] {
			return errors.NewConfiguration(fmt.Sprintf("search name %q is used twice", s.Name))
		}
		names[s.Name] = true

		if s.ResultTemplate == "" {
			return errors.NewConfiguration(fmt.Sprintf("search %q has no result template", s.Name))
		}

		ids := make(map[string]bool, len(s.SortOptions))
		for _, opt := range s.SortOptions {
			if opt.ID == "" || opt.Field == "" {
				return errors.NewConfiguration(fmt.Sprintf("search %q has a sort option without id or field", s.Name))
			}
			if ids[opt.ID] {
				return errors.NewConfiguration(fmt.Sprintf("search %q has duplicated sort option %q", s.Name, opt.ID))
			}
			ids[opt.ID] = true
		}
	}
	return nil
}

// Search returns the configuration of a named search
func (c *Config) Search(name string) (SearchConfig, bool) {
	for _, s := range c.Searches {
		if s.Name == name {
			return s, true
		}
	}
	return SearchConfig{}, false
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		BaseURL: DefaultBaseURL,
		Index:   DefaultIndex,
		Langs:   []string{"en"},
		Searches: []SearchConfig{
			{
				Name:       domain.DefaultSearchName,
				Facets:     []string{"brands", "categories", "nutrition_grades", "labels"},
				Taxonomies: []string{"brand", "category", "label"},
				FacetTaxonomies: map[string]string{
					"brands":     "brand",
					"categories": "category",
					"labels":     "label",
				},
				SortOptions: []domain.SortOption{
					{ID: "popularity", Label: "Most scanned", Field: "-unique_scans_n"},
					{ID: "nutriscore", Label: "Best Nutri-Score", Field: "nutriscore_score"},
					{ID: "last_modified", Label: "Recently modified", Field: "-last_modified_t"},
				},
				AutoRefreshSort: true,
				Charts:          []string{"nutrition_grades"},
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}
