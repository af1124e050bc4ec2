package analyzer

import (
	"context"
	"fmt"
	"io"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Provider resolves an analysis request into a normalized AnalysisResult.
// Implementations are the canned demo dataset and the remote scoring
// service; the mode is fixed when the orchestrator is constructed.
type Provider interface {
	Analyze(ctx context.Context, file types.FileMeta, content io.Reader, jobDescription, requiredSkills string) (types.AnalysisResult, error)
	Status(ctx context.Context) map[string]any
	Close() error
}

// NewProvider constructs the provider for the configured mode.
func NewProvider(cfg *config.AnalyzerConfig, logger *errors.Logger) (Provider, error) {
	switch cfg.Mode {
	case "demo":
		return NewDemoProvider(cfg, logger)
	case "remote":
		return NewRemoteProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown analyzer mode %q", cfg.Mode)
	}
}
