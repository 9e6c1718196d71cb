package config

import (
	"flag"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL     = "localhost:8000"
	defaultDatabaseDSN = "linkshelf.db"
	defaultTimeout     = 10 * time.Second
	defaultDebounce    = 300 * time.Millisecond
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE"`
	APIRateLimit   float64       `env:"API_RPS"`
	Verbose        bool          `env:"VERBOSE"`
	StateDir       string        `env:"SHELF_STATE_DIR"` // browse prefs and history; empty = user config dir
	Version        bool          `env:"-"` // show client version and exit (flag only)

	// Derived
	ServerURL  string `env:"-"` // scheme://host[:port][/prefix] for the client
	ListenAddr string `env:"-"` // host:port for the server
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги по умолчанию берут значения из env
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (postgres://… or SQLite file path)")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "backend address: host:port or full http(s) URL")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "use https scheme for host:port base URL")
	// Client flags
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "timeout of a single API request")
	flag.DurationVar(&cfg.SearchDebounce, "debounce", cfg.SearchDebounce, "idle window before a search term is applied")
	flag.Float64Var(&cfg.APIRateLimit, "rps", cfg.APIRateLimit, "max API requests per second (0 = unlimited)")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose (debug) logging")
	flag.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for browse preferences and history")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills empty settings and derives ServerURL/ListenAddr from BaseURL.
func (cfg *Config) applyDefaults() {
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDatabaseDSN
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = defaultDebounce
	}
	if cfg.APIRateLimit < 0 {
		cfg.APIRateLimit = 0
	}

	// BaseURL: либо host:port, либо полный http(s) URL. Иначе: дефолт.
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	switch {
	case hostPortRe.MatchString(base):
		cfg.BaseURL = base
		if cfg.EnableHTTPS {
			cfg.ServerURL = "https://" + base
		} else {
			cfg.ServerURL = "http://" + base
		}
		cfg.ListenAddr = base
	case isHTTPURL(base):
		u, _ := url.Parse(base)
		cfg.BaseURL = base
		cfg.ServerURL = base
		cfg.ListenAddr = u.Host
	default:
		cfg.BaseURL = defaultBaseURL
		scheme := "http://"
		if cfg.EnableHTTPS {
			scheme = "https://"
		}
		cfg.ServerURL = scheme + defaultBaseURL
		cfg.ListenAddr = defaultBaseURL
	}
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
