package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/navstack-dev/navstack/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "navstack.json"

	// DefaultPort is the default server port.
	DefaultPort = 4600

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultRoutes is the default routes manifest path.
	DefaultRoutes = "routes.yaml"

	// DefaultSnapshotTTL is the default snapshot retention window.
	DefaultSnapshotTTL = "24h"
)

// Snapshot backend names accepted in navstack.json.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// Config represents the complete navstack.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Routes is the path to the YAML routes manifest.
	Routes string `json:"routes,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Snapshot contains stack snapshot persistence settings.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Navigation contains navigation engine settings.
	Navigation NavigationConfig `json:"navigation,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`
}

// SnapshotConfig contains stack snapshot persistence settings.
type SnapshotConfig struct {
	// Backend selects the snapshot store: memory, redis, or s3.
	Backend string `json:"backend,omitempty"`

	// Key is the snapshot key for this application's stack.
	Key string `json:"key,omitempty"`

	// TTL is the snapshot retention window (e.g. "24h").
	TTL string `json:"ttl,omitempty"`

	// Redis contains settings for the redis backend.
	Redis RedisConfig `json:"redis,omitempty"`

	// S3 contains settings for the s3 backend.
	S3 S3Config `json:"s3,omitempty"`
}

// RedisConfig contains settings for the redis snapshot backend.
type RedisConfig struct {
	// Addr is the redis server address (host:port).
	Addr string `json:"addr,omitempty"`

	// Password is the redis password, if any.
	Password string `json:"password,omitempty"`

	// DB is the redis database number.
	DB int `json:"db,omitempty"`

	// Prefix is the key prefix for snapshot entries.
	Prefix string `json:"prefix,omitempty"`
}

// S3Config contains settings for the s3 snapshot backend.
type S3Config struct {
	// Bucket is the S3 bucket holding snapshots.
	Bucket string `json:"bucket,omitempty"`

	// Region is the AWS region.
	Region string `json:"region,omitempty"`

	// Prefix is the object key prefix for snapshot entries.
	Prefix string `json:"prefix,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled controls whether the /metrics endpoint and the metrics
	// interceptor are installed.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the Prometheus metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled controls whether the tracing interceptor is installed.
	Enabled bool `json:"enabled,omitempty"`

	// TracerName is the OpenTelemetry tracer name.
	TracerName string `json:"tracerName,omitempty"`
}

// NavigationConfig contains navigation engine settings.
type NavigationConfig struct {
	// ReportLocation controls whether the engine reports the current
	// location to clients.
	ReportLocation *bool `json:"reportLocation,omitempty"`

	// ResolverCacheSize is the size of the path-to-builder cache.
	ResolverCacheSize int `json:"resolverCacheSize,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	reportLocation := true
	return &Config{
		Version: "0.1.0",
		Routes:  DefaultRoutes,
		Server: ServerConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
		Snapshot: SnapshotConfig{
			Backend: BackendMemory,
			Key:     "default",
			TTL:     DefaultSnapshotTTL,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "navstack",
		},
		Tracing: TracingConfig{
			TracerName: "navstack",
		},
		Navigation: NavigationConfig{
			ReportLocation: &reportLocation,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for navstack.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No navstack.json found in " + filepath.Dir(path)).
				WithSuggestion("Create navstack.json or pass --config with an explicit path")
		}
		return nil, errors.New("E100").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E100").
			WithDetail("Failed to parse navstack.json: " + err.Error()).
			WithSuggestion("Check that navstack.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E100").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E100").Wrap(err)
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
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Routes == "" {
		c.Routes = DefaultRoutes
	}
	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = BackendMemory
	}
	if c.Snapshot.Key == "" {
		c.Snapshot.Key = "default"
	}
	if c.Snapshot.TTL == "" {
		c.Snapshot.TTL = DefaultSnapshotTTL
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "navstack"
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "navstack"
	}
	if c.Navigation.ReportLocation == nil {
		reportLocation := true
		c.Navigation.ReportLocation = &reportLocation
	}
}

// applyEnv overrides config fields from the environment. Callers that want
// .env support load it first (the serve command does this with godotenv).
func (c *Config) applyEnv() {
	if v := os.Getenv("NAVSTACK_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("NAVSTACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("NAVSTACK_SNAPSHOT_BACKEND"); v != "" {
		c.Snapshot.Backend = v
	}
	if v := os.Getenv("NAVSTACK_SNAPSHOT_KEY"); v != "" {
		c.Snapshot.Key = v
	}
	if v := os.Getenv("NAVSTACK_REDIS_ADDR"); v != "" {
		c.Snapshot.Redis.Addr = v
	}
	if v := os.Getenv("NAVSTACK_REDIS_PASSWORD"); v != "" {
		c.Snapshot.Redis.Password = v
	}
	if v := os.Getenv("NAVSTACK_S3_BUCKET"); v != "" {
		c.Snapshot.S3.Bucket = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" && c.Snapshot.S3.Region == "" {
		c.Snapshot.S3.Region = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}

	switch c.Snapshot.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Snapshot.Redis.Addr == "" {
			return errors.New("E104").
				WithDetail("The redis backend requires snapshot.redis.addr").
				WithSuggestion("Set snapshot.redis.addr or NAVSTACK_REDIS_ADDR")
		}
	case BackendS3:
		if c.Snapshot.S3.Bucket == "" {
			return errors.New("E104").
				WithDetail("The s3 backend requires snapshot.s3.bucket").
				WithSuggestion("Set snapshot.s3.bucket or NAVSTACK_S3_BUCKET")
		}
	default:
		return errors.New("E103").
			WithDetail("Backend " + strconv.Quote(c.Snapshot.Backend) + " is not supported")
	}

	if _, err := c.SnapshotTTL(); err != nil {
		return errors.New("E100").
			WithDetail("snapshot.ttl is not a valid duration: " + c.Snapshot.TTL).
			WithSuggestion(`Use a Go duration string like "30m" or "24h"`)
	}
	return nil
}

// Address returns the listen address string for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// SnapshotTTL returns the parsed snapshot retention window.
func (c *Config) SnapshotTTL() (time.Duration, error) {
	return time.ParseDuration(c.Snapshot.TTL)
}

// RoutesPath returns the absolute path to the routes manifest.
func (c *Config) RoutesPath() string {
	if filepath.IsAbs(c.Routes) {
		return c.Routes
	}
	return filepath.Join(c.Dir(), c.Routes)
}

// ReportLocation returns whether the engine should report locations.
func (c *Config) ReportLocation() bool {
	return c.Navigation.ReportLocation == nil || *c.Navigation.ReportLocation
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing navstack.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E101").
				WithDetail("No navstack.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create navstack.json at the project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
