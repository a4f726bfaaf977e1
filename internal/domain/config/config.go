package config

import (
	domainerr "bandarcms/internal/domain/errors"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Paths PathsConfig `yaml:"paths"`
	Store StoreConfig `yaml:"store"`
}

type SiteConfig struct {
	// Name is appended to post titles as " - <name>", and stripped back
	// out when scanning existing documents.
	Name             string            `yaml:"name"`
	BaseURL          string            `yaml:"base_url"`
	DefaultAuthor    string            `yaml:"default_author"`
	DefaultKeywords  string            `yaml:"default_keywords"`
	PlaceholderImage string            `yaml:"placeholder_image"`
	SeriesNames      map[string]string `yaml:"series_names"`
}

type PathsConfig struct {
	BlogDir      string `yaml:"blog_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	BackupDir    string `yaml:"backup_dir"`
}

type StoreBackend string

const (
	StoreJSON StoreBackend = "json"
	StoreBolt StoreBackend = "bolt"
)

type StoreConfig struct {
	Backend StoreBackend `yaml:"backend"`
	Path    string       `yaml:"path"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Name:             "The Bandar Breakdowns",
			BaseURL:          "https://bandar-breakdowns.vercel.app",
			DefaultAuthor:    "The Team",
			DefaultKeywords:  "bandar sunway, blog",
			PlaceholderImage: "https://via.placeholder.com/800x400/cccccc/000000?text=No+Image",
			SeriesNames: map[string]string{
				"after_hours":         "After Hours",
				"cram_and_cry":        "Cram & Cry Corners",
				"food_for_heartbreak": "Food for the Broken Hearted",
				"stressed_depressed":  "Stressed, Depressed, & Touching Grass",
				"commute_crisis":      "The Great Commute Crisis",
			},
		},
		Paths: PathsConfig{
			BlogDir:      "blog",
			TemplatesDir: "templates",
			BackupDir:    "backups",
		},
		Store: StoreConfig{
			Backend: StoreJSON,
			Path:    "posts_metadata.json",
		},
	}
}

// SeriesName maps a series key to its display name, falling back to the
// raw key for keys the config does not know.
func (c SiteConfig) SeriesName(key string) string {
	if key == "" {
		return "None"
	}
	if name, ok := c.SeriesNames[key]; ok {
		return name
	}
	return key
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Name) == "" {
		ve.Add("site.name", "must not be empty")
	}
	if strings.TrimSpace(c.Site.BaseURL) == "" {
		ve.Add("site.base_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.BaseURL) {
		ve.Add("site.base_url", "must be a valid absolute URL")
	}
	if strings.TrimSpace(c.Paths.BlogDir) == "" {
		ve.Add("paths.blog_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Paths.TemplatesDir) == "" {
		ve.Add("paths.templates_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		ve.Add("paths.backup_dir", "must not be empty")
	}
	switch c.Store.Backend {
	case "", StoreJSON, StoreBolt:
	default:
		ve.Add("store.backend", "must be 'json' or 'bolt'")
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		ve.Add("store.path", "must not be empty")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault reads the config file if it exists, otherwise returns the
// defaults. Fields present in the file override defaults, the rest keep them.
func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
