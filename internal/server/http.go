package server

import (
	"time"

	"resumelens/internal/analyzer"
	"resumelens/internal/config"
	resumelensErrors "resumelens/internal/errors"
	"resumelens/internal/types"
)

// SessionResponse is returned when a session is created
type SessionResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

// UploadResponse reports the outcome of a file upload event
type UploadResponse struct {
	Selected    bool   `json:"selected"`
	Notice      string `json:"notice,omitempty"`
	State       string `json:"state"`
	DropLabel   string `json:"drop_label,omitempty"`
	ActionReady bool   `json:"action_ready"`
	ActionLabel string `json:"action_label"`
}

// AnalyzeResponse mirrors the scoring backend's wire shape so clients of
// the original API can consume this server unchanged
type AnalyzeResponse struct {
	Success  bool           `json:"success"`
	Filename string         `json:"filename"`
	ATSScore types.ATSScore `json:"ats_score"`
	Skills   types.SkillSet `json:"skills"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Shared analysis provider; sessions get their own orchestrators
	Provider analyzer.Provider

	// Session state
	Sessions *SessionStore

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *resumelensErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	SessionTTL     time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, provider analyzer.Provider, logger *resumelensErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		Provider:       provider,
		Sessions:       NewSessionStore(cfg.SessionTTL, logger),
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
