package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/bridge"
	"github.com/hoi-launcher/shell/pkg/fragment"
	"gopkg.in/yaml.v3"
)

const (
	// JSONFileName is the preferred configuration file.
	JSONFileName = "launcher.json"

	// YAMLFileName is read when no JSON file exists.
	YAMLFileName = "launcher.yaml"

	// DefaultPort is the default HTTP port.
	DefaultPort = 7410

	// DefaultHost is the default bind host.
	DefaultHost = "localhost"

	// DefaultStorePath is the default SQLite preference database.
	DefaultStorePath = "launcher.sqlite"

	// DefaultPollInterval is how often the OS theme is re-read.
	DefaultPollInterval = "5s"
)

// Page sources.
const (
	SourceEmbed = "embed"
	SourceDir   = "dir"
	SourceHTTP  = "http"
	SourceS3    = "s3"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the complete launcher configuration.
type Config struct {
	// Name is shown as the document title.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Server  ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Pages   PagesConfig   `json:"pages,omitempty" yaml:"pages,omitempty"`
	Host    HostConfig    `json:"host,omitempty" yaml:"host,omitempty"`
	Theme   ThemeConfig   `json:"theme,omitempty" yaml:"theme,omitempty"`
	Store   StoreConfig   `json:"store,omitempty" yaml:"store,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// PagesConfig selects where page fragments come from.
type PagesConfig struct {
	// Source is one of embed, dir, http or s3.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Dir is the web root for the dir source.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// BaseURL is the origin for the http source.
	BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`

	// S3 configures the s3 source.
	S3 fragment.S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// HostConfig configures the native host connection and the development
// host.
type HostConfig struct {
	// URL is the host WebSocket endpoint. Empty means the development host
	// mounted at /host on the launcher's own server.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// GlobalURL is an always-on host endpoint tried after URL, first with
	// positional then with object-wrapped commands. Empty disables it.
	GlobalURL string `json:"globalUrl,omitempty" yaml:"globalUrl,omitempty"`

	// ModsDir holds .mod descriptors read when no host answers
	// list_mods. Empty disables the fallback. Environment variables are
	// expanded and relative paths resolve against the config directory.
	ModsDir string `json:"modsDir,omitempty" yaml:"modsDir,omitempty"`

	// Shape is how the development host wraps list_mods results.
	Shape string `json:"shape,omitempty" yaml:"shape,omitempty"`

	// Catalog is the mod list served by the development host.
	Catalog []bridge.ModEntry `json:"catalog,omitempty" yaml:"catalog,omitempty"`
}

// ThemeConfig configures OS theme following.
type ThemeConfig struct {
	// PollInterval is a Go duration string.
	PollInterval string `json:"pollInterval,omitempty" yaml:"pollInterval,omitempty"`
}

// StoreConfig configures preference persistence.
type StoreConfig struct {
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads launcher.json, or launcher.yaml, from dir. When neither
// exists the error wraps fs.ErrNotExist.
func Load(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, JSONFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return LoadFile(jsonPath)
	}
	return LoadFile(filepath.Join(dir, YAMLFileName))
}

// LoadFile reads configuration from path. The format follows the file
// extension; anything other than .yaml or .yml is read as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		lerr := errors.New(errors.CodeConfigRead).Wrap(err)
		if os.IsNotExist(err) {
			lerr = lerr.WithDetail("No launcher configuration found in " + filepath.Dir(path)).
				WithSuggestion("Create " + JSONFileName + " or rely on the defaults")
		}
		return nil, lerr
	}

	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveTo writes the configuration to path in the format its extension
// implies.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigRead).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "HOI Launcher"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Pages.Source == "" {
		c.Pages.Source = SourceEmbed
	}
	if c.Host.Shape == "" {
		c.Host.Shape = "direct"
	}
	if c.Theme.PollInterval == "" {
		c.Theme.PollInterval = DefaultPollInterval
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverSQLite
	}
	if c.Store.Path == "" && c.Store.Driver == DriverSQLite {
		c.Store.Path = DefaultStorePath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "launcher"
	}
}

// ApplyEnv overrides fields from LAUNCHER_* variables. lookup is usually
// os.LookupEnv. Malformed numbers are reported by Validate.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("LAUNCHER_HOST", &c.Server.Host)
	if v, ok := lookup("LAUNCHER_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			port = -1
		}
		c.Server.Port = port
	}
	str("LAUNCHER_PAGES_SOURCE", &c.Pages.Source)
	str("LAUNCHER_PAGES_DIR", &c.Pages.Dir)
	str("LAUNCHER_PAGES_URL", &c.Pages.BaseURL)
	str("LAUNCHER_S3_BUCKET", &c.Pages.S3.Bucket)
	str("LAUNCHER_S3_ENDPOINT", &c.Pages.S3.Endpoint)
	str("LAUNCHER_HOST_URL", &c.Host.URL)
	str("LAUNCHER_HOST_GLOBAL_URL", &c.Host.GlobalURL)
	str("LAUNCHER_HOST_SHAPE", &c.Host.Shape)
	str("LAUNCHER_MODS_DIR", &c.Host.ModsDir)
	str("LAUNCHER_STORE_DRIVER", &c.Store.Driver)
	str("LAUNCHER_STORE_PATH", &c.Store.Path)
	str("LAUNCHER_LOG_LEVEL", &c.Log.Level)
	str("LAUNCHER_LOG_FORMAT", &c.Log.Format)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.CodeConfigInvalid).WithDetailf(format, args...)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("Port must be between 0 and 65535")
	}

	switch c.Pages.Source {
	case SourceEmbed:
	case SourceDir:
		if c.Pages.Dir == "" {
			return invalid("pages.dir is required for the dir source")
		}
	case SourceHTTP:
		if c.Pages.BaseURL == "" {
			return invalid("pages.baseUrl is required for the http source")
		}
	case SourceS3:
		if c.Pages.S3.Bucket == "" {
			return invalid("pages.s3.bucket is required for the s3 source")
		}
	default:
		return invalid("unknown pages source %q", c.Pages.Source)
	}

	switch c.Host.Shape {
	case "direct", "payload", "data", "text":
	default:
		return invalid("unknown host shape %q", c.Host.Shape)
	}

	if d, err := time.ParseDuration(c.Theme.PollInterval); err != nil || d <= 0 {
		return invalid("theme.pollInterval %q is not a positive duration", c.Theme.PollInterval)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return invalid("store.path is required for the sqlite driver")
		}
	default:
		return invalid("unknown store driver %q", c.Store.Driver)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return invalid("unknown log level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the launcher's base URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// HostURL returns the native host endpoint, defaulting to the development
// host on the launcher's own server.
func (c *Config) HostURL() string {
	if c.Host.URL != "" {
		return c.Host.URL
	}
	return "ws://" + c.Address() + "/host"
}

// PollInterval returns the parsed theme poll interval.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Theme.PollInterval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// StorePath returns the preference database path, resolved against the
// config directory.
func (c *Config) StorePath() string {
	return c.resolve(c.Store.Path)
}

// ModsDir returns the fallback descriptor directory, or "" when unset.
func (c *Config) ModsDir() string {
	return c.resolve(os.ExpandEnv(c.Host.ModsDir))
}

// PagesDir returns the dir source root, resolved against the config
// directory.
func (c *Config) PagesDir() string {
	return c.resolve(c.Pages.Dir)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// String summarizes the effective configuration for logs.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s pages=%s host=%s store=%s", c.Address(), c.Pages.Source, c.HostURL(), c.Store.Driver)
}
