package analyzer

import (
	"github.com/sony/gobreaker/v2"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// AnalysisCircuitBreaker wraps remote analysis calls with the circuit
// breaker pattern so a failing scoring backend sheds load quickly instead
// of tying up every request in timeouts.
type AnalysisCircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[types.AnalysisResult]
}

// NewAnalysisCircuitBreaker creates a circuit breaker for the remote
// scoring backend. Returns nil when disabled in configuration.
func NewAnalysisCircuitBreaker(cfg *config.CircuitBreakerConfig, logger *errors.Logger) *AnalysisCircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "resume-analysis",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &AnalysisCircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[types.AnalysisResult](settings),
	}
}

// Execute runs the provided function with circuit breaker protection
func (cb *AnalysisCircuitBreaker) Execute(fn func() (types.AnalysisResult, error)) (types.AnalysisResult, error) {
	if cb == nil || cb.cb == nil {
		// Breaker disabled, just execute the function directly
		return fn()
	}
	return cb.cb.Execute(fn)
}

// GetStats returns circuit breaker statistics
func (cb *AnalysisCircuitBreaker) GetStats() map[string]any {
	if cb == nil || cb.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    cb.cb.Name(),
		"state":   cb.cb.State().String(),
		"counts":  cb.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (cb *AnalysisCircuitBreaker) IsHealthy() bool {
	if cb == nil || cb.cb == nil {
		return true
	}
	return cb.cb.State() == gobreaker.StateClosed
}
