package config

import (
	"fmt"
	"net/url"
	"slices"
)

// AnalyzerModes lists the supported analysis execution modes
var AnalyzerModes = []string{"demo", "remote"}

// Validate checks the configuration for internal consistency
func (c *Config) Validate() error {
	if !slices.Contains(AnalyzerModes, c.Analyzer.Mode) {
		return fmt.Errorf("analyzer.mode must be one of %v, got %q", AnalyzerModes, c.Analyzer.Mode)
	}

	if c.Analyzer.Mode == "remote" {
		if c.Analyzer.Endpoint == "" {
			return fmt.Errorf("analyzer.endpoint is required in remote mode")
		}
		if _, err := url.ParseRequestURI(c.Analyzer.Endpoint); err != nil {
			return fmt.Errorf("analyzer.endpoint is not a valid URL: %w", err)
		}
	}

	if c.Analyzer.Timeout <= 0 {
		return fmt.Errorf("analyzer.timeout must be positive")
	}
	if c.Analyzer.DemoDelay < 0 {
		return fmt.Errorf("analyzer.demoDelay cannot be negative")
	}

	if cb := c.Analyzer.CircuitBreaker; cb.Enabled {
		if cb.FailureThreshold <= 0 || cb.FailureThreshold > 1 {
			return fmt.Errorf("analyzer.circuitBreaker.failureThreshold must be in (0,1], got %v", cb.FailureThreshold)
		}
		if cb.MinRequests == 0 {
			return fmt.Errorf("analyzer.circuitBreaker.minRequests must be at least 1")
		}
	}

	if c.Charts.SkillsWidth <= 0 || c.Charts.SkillsHeight <= 0 ||
		c.Charts.TrendWidth <= 0 || c.Charts.TrendHeight <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}

	if len(c.App.SupportedFormats) > 0 && !slices.Contains(c.App.SupportedFormats, c.App.DefaultFormat) {
		return fmt.Errorf("app.defaultFormat %q is not among app.supportedFormats %v",
			c.App.DefaultFormat, c.App.SupportedFormats)
	}

	if c.App.MaxRequestSize <= 0 {
		return fmt.Errorf("app.maxRequestSize must be positive")
	}

	return nil
}

// IsDemoMode reports whether analysis runs against canned data
func (c *Config) IsDemoMode() bool {
	return c.Analyzer.Mode == "demo"
}
