// Package config loads and validates service configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Flag names bound into the configuration.
const (
	FlagHTTPHost = "http-host"
	FlagHTTPPort = "http-port"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Site      SiteConfig      `mapstructure:"site"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	RequestTimeoutSeconds  int    `mapstructure:"request_timeout_seconds"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

// UpstreamConfig configures the metadata API client.
type UpstreamConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SiteConfig holds static links served by the index route.
type SiteConfig struct {
	RepositoryURL string `mapstructure:"repository_url"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// TelemetryConfig controls OpenTelemetry tracing. Spans are only exported
// when an OTLP endpoint is configured.
type TelemetryConfig struct {
	ServiceName    string  `mapstructure:"service_name"`
	TracingEnabled bool    `mapstructure:"tracing_enabled"`
	Exporter       string  `mapstructure:"exporter"`
	Endpoint       string  `mapstructure:"endpoint"`
	Insecure       bool    `mapstructure:"insecure"`
	SampleRate     float64 `mapstructure:"sample_rate"`
}

// Load builds a Config from defaults, an optional file, the environment, and
// flags. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FXBILIBILI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The unprefixed names are the ones documented for deployments.
	if err := v.BindEnv("server.host", "FXBILIBILI_SERVER_HOST", "HTTP_HOST"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("server.port", "FXBILIBILI_SERVER_PORT", "HTTP_PORT"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if flags != nil {
		if err := bindFlag(v, "server.host", flags, FlagHTTPHost); err != nil {
			return Config{}, err
		}
		if err := bindFlag(v, "server.port", flags, FlagHTTPPort); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadDotEnv exports variables from a .env file without overriding ones that
// are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) error {
	flag := flags.Lookup(name)
	if flag == nil {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind flag %s: %w", name, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout_seconds", 30)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("upstream.endpoint", "https://api.bilibili.com/x/web-interface/wbi/view")
	v.SetDefault("upstream.user_agent", "")
	v.SetDefault("upstream.timeout_seconds", 10)
	v.SetDefault("site.repository_url", "https://github.com/cubewhy/fxbilibili")
	v.SetDefault("logging.development", false)
	v.SetDefault("telemetry.service_name", "fxbilibili")
	v.SetDefault("telemetry.tracing_enabled", true)
	v.SetDefault("telemetry.exporter", "http")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.sample_rate", 1.0)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server.host must be set")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("server.request_timeout_seconds must be > 0")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("upstream.timeout_seconds must be > 0")
	}
	if u, err := url.Parse(c.Upstream.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("upstream.endpoint must be an absolute URL")
	}
	if c.Site.RepositoryURL == "" {
		return fmt.Errorf("site.repository_url must be set")
	}
	switch c.Telemetry.Exporter {
	case "", "http", "grpc":
	default:
		return fmt.Errorf("telemetry.exporter must be http or grpc")
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0 and 1")
	}
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UpstreamTimeout bounds each metadata API call.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// RequestTimeout bounds each inbound request.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// ShutdownTimeout bounds graceful drain on exit.
func (c Config) ShutdownTimeout() time.Duration {
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}
