package web

import (
	"net/http"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
)

const (
	// DefaultAddr is the listen address used by Run.
	DefaultAddr = ":8080"
	// DefaultSessionTTL is how long an idle session keeps its controller.
	DefaultSessionTTL = 30 * time.Minute
	// DefaultCleanupEvery is the janitor period.
	DefaultCleanupEvery = time.Minute
	// DefaultRefreshDelay is how long the page waits after a keystroke before
	// it polls for the validation outcome.
	DefaultRefreshDelay = 600 * time.Millisecond
	// SessionCookie names the cookie carrying the session id.
	SessionCookie = "entryform_session"
)

// Mux is the minimal interface extra routes are mounted on. It is satisfied
// by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountFn registers extra routes next to the form, e.g. the mocked API.
type MountFn func(mux Mux) error

type config struct {
	addr            string
	basePath        string
	title           string
	sessionTTL      time.Duration
	cleanupEvery    time.Duration
	refreshDelay    time.Duration
	shutdownTimeout time.Duration
	logger          *zap.Logger
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	mounts          []MountFn
	now             func() time.Time
}

func newConfig(options ...Option) config {
	cfg := config{
		addr:            DefaultAddr,
		title:           "Entry form",
		sessionTTL:      DefaultSessionTTL,
		cleanupEvery:    DefaultCleanupEvery,
		refreshDelay:    DefaultRefreshDelay,
		shutdownTimeout: 5 * time.Second,
		logger:          zap.NewNop(),
		now:             time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.selector == nil {
		manifest := DefaultManifest()
		cfg.selector = NewManifestSelector(manifest)
		if cfg.themeName == "" {
			cfg.themeName = manifest.Name
		}
	}
	return cfg
}

// Option configures the web surface.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *config) {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			c.addr = trimmed
		}
	}
}

// WithBasePath mounts the form under a prefix such as "/form".
func WithBasePath(path string) Option {
	return func(c *config) {
		path = strings.TrimRight(strings.TrimSpace(path), "/")
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.basePath = path
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(c *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			c.title = trimmed
		}
	}
}

// WithSessionTTL sets how long an idle session survives.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.sessionTTL = ttl
		}
	}
}

// WithCleanupEvery sets the janitor period. Zero disables the janitor.
func WithCleanupEvery(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.cleanupEvery = d
		}
	}
}

// WithRefreshDelay sets the page's post-keystroke polling delay. It should
// exceed the controller's debounce window.
func WithRefreshDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.refreshDelay = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithThemeSelector resolves the page theme through selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(c *config) {
		if selector != nil {
			c.selector = selector
		}
		c.themeName = strings.TrimSpace(name)
		c.themeVariant = strings.TrimSpace(variant)
	}
}

// WithMount registers extra routes on the server mux.
func WithMount(fn MountFn) Option {
	return func(c *config) {
		if fn != nil {
			c.mounts = append(c.mounts, fn)
		}
	}
}

// WithNow overrides the clock used for session bookkeeping.
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
