package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Precedence order: config file values, then environment variables
// (RESUMELENS_ANALYZER_MODE, etc.), then defaults.
type Config struct {
	Analyzer      AnalyzerConfig      `mapstructure:"analyzer"`
	Charts        ChartsConfig        `mapstructure:"charts"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AnalyzerConfig holds analysis orchestration configuration. Mode is fixed
// at startup: there is no runtime toggle between demo and remote.
type AnalyzerConfig struct {
	Mode           string               `mapstructure:"mode"`           // "demo" or "remote"
	Endpoint       string               `mapstructure:"endpoint"`       // remote scoring endpoint
	Timeout        time.Duration        `mapstructure:"timeout"`        // remote request timeout
	DemoDelay      time.Duration        `mapstructure:"demoDelay"`      // simulated processing delay in demo mode
	FixtureFile    string               `mapstructure:"fixtureFile"`    // optional JSON override for the demo result
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// ChartsConfig holds chart surface dimensions and CLI output location
type ChartsConfig struct {
	SkillsWidth  int    `mapstructure:"skillsWidth"`
	SkillsHeight int    `mapstructure:"skillsHeight"`
	TrendWidth   int    `mapstructure:"trendWidth"`
	TrendHeight  int    `mapstructure:"trendHeight"`
	OutputDir    string `mapstructure:"outputDir"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// Session lifetime; state never outlives the page session it models
	SessionTTL time.Duration `mapstructure:"sessionTTL"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"`

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int           `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int           `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool          `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool          `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
	Window         time.Duration `mapstructure:"window"`         // Rate limiting window duration
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxRequestSize   int64    `mapstructure:"maxRequestSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	ServiceName    string            `mapstructure:"serviceName"`
	ServiceVersion string            `mapstructure:"serviceVersion"`
	ConsoleOutput  bool              `mapstructure:"consoleOutput"`
	SampleRate     float64           `mapstructure:"sampleRate"`
	Tracing        TracingConfig     `mapstructure:"tracing"`
	Metrics        MetricsConfig     `mapstructure:"metrics"`
	Console        ConsoleConfig     `mapstructure:"console"`
	Prometheus     PrometheusConfig  `mapstructure:"prometheus"`
	OTLP           OTLPConfig        `mapstructure:"otlp"`
	HealthCheck    HealthCheckConfig `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	BackendCheckTimeout time.Duration `mapstructure:"backendCheckTimeout"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RESUMELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumelens/")
	v.AddConfigPath("$HOME/.resumelens")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		log.Printf("[CONFIG] Loaded config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
