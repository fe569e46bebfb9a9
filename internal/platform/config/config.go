package config

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile           = ".env"
	defaultAddress           = ":8080"
	defaultBasePath          = "/admin"
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultBackendTimeout    = 15 * time.Second
	defaultInventoryInterval = 30 * time.Second
	defaultCustomerInterval  = time.Minute
	defaultLowStockThreshold = 3
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Shop    ShopConfig
	Polling PollingConfig
}

// ServerConfig configures the console HTTP server.
type ServerConfig struct {
	Address      string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig locates the remote shop backend. Token is the service
// credential used for timer-driven refreshes that run outside a request;
// interactive calls pass the operator's own bearer token through.
type BackendConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// ShopConfig scopes the console to a single shop.
type ShopConfig struct {
	ID                string
	LowStockThreshold int
}

// PollingConfig controls the timer-driven list refreshes.
type PollingConfig struct {
	InventoryInterval time.Duration
	CustomerInterval  time.Duration
}

// ValidationError reports missing or invalid configuration fields.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the dotenv file consulted during loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap supplies explicit values that take precedence over the environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration with precedence dotenv < OS env < explicit map.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if v, ok := options.envMap[key]; ok {
				return v, true
			}
		}
		if options.useSystemEnv {
			if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
				return v, true
			}
		}
		v, ok := dotEnvValues[key]
		return v, ok
	}

	cfg := Config{
		Server: ServerConfig{
			Address:      stringWithDefault(lookup, "ADMIN_HTTP_ADDR", defaultAddress),
			BasePath:     stringWithDefault(lookup, "ADMIN_BASE_PATH", defaultBasePath),
			ReadTimeout:  durationWithDefault(lookup, "ADMIN_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "ADMIN_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "ADMIN_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Backend: BackendConfig{
			BaseURL: stringWithDefault(lookup, "BACKEND_BASE_URL", ""),
			Token:   stringWithDefault(lookup, "BACKEND_TOKEN", ""),
			Timeout: durationWithDefault(lookup, "BACKEND_TIMEOUT", defaultBackendTimeout),
		},
		Shop: ShopConfig{
			ID:                stringWithDefault(lookup, "SHOP_ID", ""),
			LowStockThreshold: intWithDefault(lookup, "SHOP_LOW_STOCK_THRESHOLD", defaultLowStockThreshold),
		},
		Polling: PollingConfig{
			InventoryInterval: durationWithDefault(lookup, "POLL_INVENTORY_INTERVAL", defaultInventoryInterval),
			CustomerInterval:  durationWithDefault(lookup, "POLL_CUSTOMER_INTERVAL", defaultCustomerInterval),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string
	if strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		missing = append(missing, "BACKEND_BASE_URL")
	}
	if strings.TrimSpace(cfg.Shop.ID) == "" {
		missing = append(missing, "SHOP_ID")
	}
	if cfg.Polling.InventoryInterval <= 0 {
		missing = append(missing, "POLL_INVENTORY_INTERVAL")
	}
	if cfg.Shop.LowStockThreshold < 0 {
		missing = append(missing, "SHOP_LOW_STOCK_THRESHOLD")
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &ValidationError{fields: missing}
}

func loadDotEnv(path string) (map[string]string, error) {
	values := map[string]string{}
	if strings.TrimSpace(path) == "" {
		return values, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("config: open env file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if v, ok := lookup(key); ok {
		if parsed, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if v, ok := lookup(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}
