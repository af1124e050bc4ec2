package analyzer

import (
	"context"
	"io"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// DemoProvider returns a fixed canned result after a simulated processing
// delay. It makes no network calls and is deterministic, which keeps
// offline exploration and golden-value tests stable.
type DemoProvider struct {
	delay   time.Duration
	fixture *FixtureStore
	logger  *errors.Logger
}

// NewDemoProvider creates a demo provider. When cfg.FixtureFile is set the
// canned result is loaded from that file and hot-reloaded on change;
// otherwise the built-in fixture is used.
func NewDemoProvider(cfg *config.AnalyzerConfig, logger *errors.Logger) (*DemoProvider, error) {
	fixture := NewFixtureStore(cfg.FixtureFile, logger)
	if cfg.FixtureFile != "" {
		if err := fixture.Load(); err != nil {
			return nil, err
		}
		if err := fixture.Watch(); err != nil {
			logger.LogError(err, "Demo fixture watcher failed to start, continuing without hot reload")
		}
	}

	return &DemoProvider{
		delay:   cfg.DemoDelay,
		fixture: fixture,
		logger:  logger,
	}, nil
}

// Analyze waits out the simulated delay and returns the canned result.
// The file content is never read in demo mode.
func (p *DemoProvider) Analyze(ctx context.Context, file types.FileMeta, _ io.Reader, _, _ string) (types.AnalysisResult, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return types.AnalysisResult{}, errors.NewTransportError(errors.ErrCodeAnalysisFailed,
			"Analysis failed", ctx.Err())
	}

	result := p.fixture.Result()
	result.Filename = file.Name
	return result, nil
}

// Status reports the demo provider configuration for the health endpoint.
func (p *DemoProvider) Status(_ context.Context) map[string]any {
	return map[string]any{
		"mode":      "demo",
		"available": true,
		"delay":     p.delay.String(),
		"fixture":   p.fixture.Source(),
	}
}

// Close stops the fixture watcher if one is running.
func (p *DemoProvider) Close() error {
	return p.fixture.Stop()
}

// DemoResult is the built-in canned analysis: overall 82.5 (grade B),
// the five fixed section scores, and eight skills spanning five
// categories.
func DemoResult() types.AnalysisResult {
	return types.AnalysisResult{
		ATSScore: types.ATSScore{
			OverallScore: 82.5,
			Grade:        "B",
			SectionScores: map[string]float64{
				"formatting": 85,
				"keywords":   78,
				"experience": 90,
				"education":  80,
				"skills":     82,
			},
			Strengths: []string{
				"Clear section structure",
				"Strong action verbs",
				"Quantified achievements",
			},
			Weaknesses: []string{
				"Low keyword density for the target role",
				"Missing professional summary",
			},
			Recommendations: []string{
				"Add more role-specific keywords",
				"Quantify impact with concrete metrics",
				"Include a professional summary at the top",
				"Use standard section headings for ATS parsing",
			},
		},
		Skills: types.SkillSet{
			Extracted: []types.ExtractedSkill{
				{Name: "Python", Category: "Programming Languages", Weight: 0.9},
				{Name: "JavaScript", Category: "Programming Languages", Weight: 0.85},
				{Name: "React", Category: "Web Development", Weight: 0.9},
				{Name: "Node.js", Category: "Web Development", Weight: 0.9},
				{Name: "AWS", Category: "Cloud & DevOps", Weight: 0.95},
				{Name: "Docker", Category: "Cloud & DevOps", Weight: 0.9},
				{Name: "PostgreSQL", Category: "Databases", Weight: 0.85},
				{Name: "Team Leadership", Category: "Soft Skills", Weight: 0.7},
			},
		},
	}
}
