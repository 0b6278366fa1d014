package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	// Populate the environment from a .env file when one is present.
	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultHost               = "0.0.0.0"
	defaultPort               = 2222
	defaultHostKeyPath        = ".data/host_ed25519"
	defaultIdleTimeout        = 120 * time.Second
	defaultMaxSessions        = 32
	defaultRateLimitPerMinute = 30
	defaultRateBurst          = 10
	defaultHTTPAddr           = ":8080"
	defaultPrefsDriver        = "sqlite"
	defaultSQLitePath         = ".data/prefs.db"
	defaultFilePath           = ".data/prefs.json"
	defaultTheme              = "dark"
	defaultLogLevel           = "info"
	maximumConfiguredSessions = 1024

	// HTTPDisabled turns the web surface off when used as PORTFOLIO_HTTP_ADDR.
	HTTPDisabled = "off"
)

var (
	prefsDrivers = []string{"sqlite", "file", "memory"}
	themeModes   = []string{"dark", "light"}
	logLevels    = []string{"debug", "info", "warn", "error"}
)

// Config captures startup settings for the portfolio servers and tools.
type Config struct {
	Host               string
	Port               int
	HostKeyPath        string
	IdleTimeout        time.Duration
	MaxSessions        int
	RateLimitPerMinute int
	RateBurst          int

	HTTPAddr      string
	// SecureCookies marks the theme cookie Secure for sites served over TLS.
	SecureCookies bool

	PrefsDriver string
	PrefsPath   string

	ContentPath string
	ResumePath  string

	DefaultTheme string
	ForceColor   bool
	ForceMono    bool

	LogLevel string
}

// HTTPEnabled reports whether the web surface should be started.
func (c Config) HTTPEnabled() bool {
	return c.HTTPAddr != HTTPDisabled
}

// SSHAddress returns the host:port the SSH surface listens on.
func (c Config) SSHAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadFromEnv loads runtime configuration from PORTFOLIO_* environment variables.
func LoadFromEnv() (Config, error) {
	host, err := readRequiredOrDefault("PORTFOLIO_SSH_HOST", defaultHost)
	if err != nil {
		return Config{}, err
	}

	port, err := readInt("PORTFOLIO_SSH_PORT", defaultPort, 1, 65535)
	if err != nil {
		return Config{}, err
	}

	hostKeyPath, err := readPath("PORTFOLIO_SSH_HOST_KEY_PATH", defaultHostKeyPath)
	if err != nil {
		return Config{}, err
	}

	idleTimeout, err := readDuration("PORTFOLIO_SSH_IDLE_TIMEOUT", defaultIdleTimeout)
	if err != nil {
		return Config{}, err
	}

	maxSessions, err := readInt("PORTFOLIO_SSH_MAX_SESSIONS", defaultMaxSessions, 1, maximumConfiguredSessions)
	if err != nil {
		return Config{}, err
	}

	rateLimit, err := readInt("PORTFOLIO_SSH_RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute, 1, 10000)
	if err != nil {
		return Config{}, err
	}

	rateBurst, err := readInt("PORTFOLIO_SSH_RATE_BURST", defaultRateBurst, 1, 1000)
	if err != nil {
		return Config{}, err
	}

	httpAddr, err := readRequiredOrDefault("PORTFOLIO_HTTP_ADDR", defaultHTTPAddr)
	if err != nil {
		return Config{}, err
	}

	prefsDriver, err := readChoice("PORTFOLIO_PREFS_DRIVER", defaultPrefsDriver, prefsDrivers)
	if err != nil {
		return Config{}, err
	}

	secureCookies, err := readBool("PORTFOLIO_SECURE_COOKIES")
	if err != nil {
		return Config{}, err
	}

	prefsPath := ""
	if prefsDriver != "memory" {
		prefsPath, err = readPath("PORTFOLIO_PREFS_PATH", DefaultPrefsPath(prefsDriver))
		if err != nil {
			return Config{}, err
		}
	}

	theme, err := readChoice("PORTFOLIO_DEFAULT_THEME", defaultTheme, themeModes)
	if err != nil {
		return Config{}, err
	}

	forceColor, err := readBool("PORTFOLIO_FORCE_COLOR")
	if err != nil {
		return Config{}, err
	}
	forceMono, err := readBool("PORTFOLIO_FORCE_MONO")
	if err != nil {
		return Config{}, err
	}
	if forceColor && forceMono {
		return Config{}, fmt.Errorf("PORTFOLIO_FORCE_COLOR and PORTFOLIO_FORCE_MONO are mutually exclusive")
	}

	logLevel, err := readChoice("PORTFOLIO_LOG_LEVEL", defaultLogLevel, logLevels)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Host:               host,
		Port:               port,
		HostKeyPath:        hostKeyPath,
		IdleTimeout:        idleTimeout,
		MaxSessions:        maxSessions,
		RateLimitPerMinute: rateLimit,
		RateBurst:          rateBurst,
		HTTPAddr:           httpAddr,
		SecureCookies:      secureCookies,
		PrefsDriver:        prefsDriver,
		PrefsPath:          prefsPath,
		ContentPath:        readOptionalPath("PORTFOLIO_CONTENT_PATH"),
		ResumePath:         readOptionalPath("PORTFOLIO_RESUME_PATH"),
		DefaultTheme:       theme,
		ForceColor:         forceColor,
		ForceMono:          forceMono,
		LogLevel:           logLevel,
	}, nil
}

// DefaultPrefsPath returns where the named preference driver keeps its data
// when PORTFOLIO_PREFS_PATH is unset. The memory driver has no path.
func DefaultPrefsPath(driver string) string {
	switch driver {
	case "memory":
		return ""
	case "file":
		return defaultFilePath
	}
	return defaultSQLitePath
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	return raw, nil
}

func readPath(key, fallback string) (string, error) {
	raw, err := readRequiredOrDefault(key, fallback)
	if err != nil {
		return "", err
	}
	clean := filepath.Clean(raw)
	if clean == "." {
		return "", fmt.Errorf("%s must not resolve to current directory", key)
	}
	return clean, nil
}

func readOptionalPath(key string) string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return ""
	}
	return filepath.Clean(raw)
}

func readChoice(key, fallback string, allowed []string) (string, error) {
	raw, err := readRequiredOrDefault(key, fallback)
	if err != nil {
		return "", err
	}
	raw = strings.ToLower(raw)
	for _, candidate := range allowed {
		if raw == candidate {
			return raw, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s", key, strings.Join(allowed, ", "))
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func readBool(key string) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}
