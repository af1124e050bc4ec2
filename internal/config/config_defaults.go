package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Analyzer Configuration
	v.SetDefault("analyzer.mode", "demo")
	v.SetDefault("analyzer.endpoint", "http://localhost:8000/api/analyze-resume")
	v.SetDefault("analyzer.timeout", 30*time.Second)
	v.SetDefault("analyzer.demoDelay", 2*time.Second)
	v.SetDefault("analyzer.fixtureFile", "")

	// Circuit breaker defaults for the remote scoring backend
	v.SetDefault("analyzer.circuitBreaker.enabled", true)
	v.SetDefault("analyzer.circuitBreaker.maxRequests", 3)
	v.SetDefault("analyzer.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("analyzer.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("analyzer.circuitBreaker.minRequests", 3)
	v.SetDefault("analyzer.circuitBreaker.failureThreshold", 0.6)

	// Chart surfaces
	v.SetDefault("charts.skillsWidth", 700)
	v.SetDefault("charts.skillsHeight", 420)
	v.SetDefault("charts.trendWidth", 700)
	v.SetDefault("charts.trendHeight", 300)
	v.SetDefault("charts.outputDir", "reports")

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.sessionTTL", 30*time.Minute)
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	// 10 MiB upload limit plus multipart framing headroom
	v.SetDefault("app.maxRequestSize", 11*1024*1024)

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumelens")
	v.SetDefault("observability.serviceVersion", "") // Will use app version if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.backendCheckTimeout", 10*time.Second)
}
