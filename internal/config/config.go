// Package config loads entryform settings from defaults, an optional config
// file, a .env file and ENTRYFORM_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "ENTRYFORM"

// Config is the full runtime configuration.
type Config struct {
	Debounce          time.Duration `mapstructure:"debounce"`
	ValidationTimeout time.Duration `mapstructure:"validation_timeout"`

	API   APIConfig   `mapstructure:"api"`
	Mock  MockConfig  `mapstructure:"mock"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	Log   LogConfig   `mapstructure:"log"`
	Theme ThemeConfig `mapstructure:"theme"`
}

// APIConfig points the controller at a remote mock API. An empty URL keeps
// both collaborators in-process.
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MockConfig struct {
	Latency    time.Duration   `mapstructure:"latency"`
	Locations  []string        `mapstructure:"locations"`
	TakenNames []string        `mapstructure:"taken_names"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type HTTPConfig struct {
	Addr       string        `mapstructure:"addr"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ThemeConfig selects the web theme. An empty variant uses the base tokens;
// Tokens override individual base tokens.
type ThemeConfig struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

// Options tweak where Load looks for files.
type Options struct {
	ConfigFile string
	EnvFile    string
	SearchPath []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Debounce:          500 * time.Millisecond,
		ValidationTimeout: 5 * time.Second,
		API: APIConfig{
			Timeout: 10 * time.Second,
		},
		Mock: MockConfig{
			Latency: 200 * time.Millisecond,
			RateLimit: RateLimitConfig{
				RPS:   20,
				Burst: 40,
			},
		},
		HTTP: HTTPConfig{
			Addr:       ":8080",
			SessionTTL: 30 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Theme: ThemeConfig{
			Name:   "entryform",
			Tokens: map[string]string{},
		},
	}
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("entryform")
		paths := opts.SearchPath
		if len(paths) == 0 {
			paths = []string{".", "$HOME/.config/entryform"}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the controller and servers cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("debounce must be positive, got %s", c.Debounce))
	}
	if c.ValidationTimeout < 0 {
		errs = append(errs, fmt.Errorf("validation_timeout must not be negative, got %s", c.ValidationTimeout))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.Mock.Latency < 0 {
		errs = append(errs, fmt.Errorf("mock.latency must not be negative, got %s", c.Mock.Latency))
	}
	if c.HTTP.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("http.session_ttl must be positive, got %s", c.HTTP.SessionTTL))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Remote reports whether the collaborators should be reached over HTTP.
func (c Config) Remote() bool {
	return strings.TrimSpace(c.API.URL) != ""
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("debounce", d.Debounce)
	v.SetDefault("validation_timeout", d.ValidationTimeout)
	v.SetDefault("api.url", d.API.URL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("mock.latency", d.Mock.Latency)
	v.SetDefault("mock.locations", d.Mock.Locations)
	v.SetDefault("mock.taken_names", d.Mock.TakenNames)
	v.SetDefault("mock.rate_limit.rps", d.Mock.RateLimit.RPS)
	v.SetDefault("mock.rate_limit.burst", d.Mock.RateLimit.Burst)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.session_ttl", d.HTTP.SessionTTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("theme.name", d.Theme.Name)
	v.SetDefault("theme.variant", d.Theme.Variant)
	v.SetDefault("theme.tokens", d.Theme.Tokens)
}
