package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// RemoteProvider submits the resume to the scoring backend over HTTP and
// normalizes the response. The backend contract is a multipart POST with
// the file plus optional job context fields, answering with the ATS score
// and extracted skills as JSON.
type RemoteProvider struct {
	endpoint string
	client   *http.Client
	breaker  *AnalysisCircuitBreaker
	logger   *errors.Logger
}

// NewRemoteProvider creates a provider for the configured backend endpoint.
func NewRemoteProvider(cfg *config.AnalyzerConfig, logger *errors.Logger) *RemoteProvider {
	return &RemoteProvider{
		endpoint: cfg.Endpoint,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: NewAnalysisCircuitBreaker(&cfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

// Analyze posts the resume to the backend through the circuit breaker and
// decodes the scoring response.
func (p *RemoteProvider) Analyze(ctx context.Context, file types.FileMeta, content io.Reader, jobDescription, requiredSkills string) (types.AnalysisResult, error) {
	return p.breaker.Execute(func() (types.AnalysisResult, error) {
		return p.post(ctx, file, content, jobDescription, requiredSkills)
	})
}

func (p *RemoteProvider) post(ctx context.Context, file types.FileMeta, content io.Reader, jobDescription, requiredSkills string) (types.AnalysisResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return types.AnalysisResult{}, errors.NewInternalError("REQUEST_BUILD_FAILED",
			"failed to build multipart request", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return types.AnalysisResult{}, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"failed to read resume content", err).WithContext("file", file.Name)
	}

	// Optional job context travels only when the caller provided it.
	if s := strings.TrimSpace(jobDescription); s != "" {
		if err := writer.WriteField("job_description", s); err != nil {
			return types.AnalysisResult{}, errors.NewInternalError("REQUEST_BUILD_FAILED",
				"failed to build multipart request", err)
		}
	}
	if s := strings.TrimSpace(requiredSkills); s != "" {
		if err := writer.WriteField("required_skills", s); err != nil {
			return types.AnalysisResult{}, errors.NewInternalError("REQUEST_BUILD_FAILED",
				"failed to build multipart request", err)
		}
	}
	if err := writer.Close(); err != nil {
		return types.AnalysisResult{}, errors.NewInternalError("REQUEST_BUILD_FAILED",
			"failed to finalize multipart request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, &body)
	if err != nil {
		return types.AnalysisResult{}, errors.NewInternalError("REQUEST_BUILD_FAILED",
			"failed to create backend request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return types.AnalysisResult{}, errors.NewTransportError(errors.ErrCodeBackendUnreachable,
			"Analysis failed", err).WithContext("endpoint", p.endpoint)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.LogError(closeErr, "Failed to close backend response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for the log, never for the user.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		p.logger.Warn("Backend returned non-success status",
			"status", resp.StatusCode,
			"endpoint", p.endpoint,
			"body", string(snippet))
		return types.AnalysisResult{}, errors.NewTransportError(errors.ErrCodeAnalysisFailed,
			"Analysis failed", fmt.Errorf("backend status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}

	return decodeAnalysisResponse(resp.Body, file.Name)
}

// wireResponse mirrors the backend JSON. Required fields are pointers so a
// missing key is distinguishable from a zero value.
type wireResponse struct {
	Success  *bool         `json:"success"`
	Filename string        `json:"filename"`
	ATSScore *wireATSScore `json:"ats_score"`
	Skills   *wireSkills   `json:"skills"`
}

type wireATSScore struct {
	OverallScore    *float64           `json:"overall_score"`
	Grade           *string            `json:"grade"`
	SectionScores   map[string]float64 `json:"section_scores"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
}

type wireSkills struct {
	Extracted []types.ExtractedSkill `json:"extracted"`
}

func decodeAnalysisResponse(r io.Reader, filename string) (types.AnalysisResult, error) {
	var wire wireResponse
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return types.AnalysisResult{}, errors.NewDataShapeError(errors.ErrCodeBadResponseShape,
			"backend response is not valid JSON", err)
	}

	switch {
	case wire.Success == nil:
		return types.AnalysisResult{}, shapeError("success")
	case !*wire.Success:
		return types.AnalysisResult{}, errors.NewTransportError(errors.ErrCodeAnalysisFailed,
			"Analysis failed", fmt.Errorf("backend reported success=false"))
	case wire.ATSScore == nil:
		return types.AnalysisResult{}, shapeError("ats_score")
	case wire.ATSScore.OverallScore == nil:
		return types.AnalysisResult{}, shapeError("ats_score.overall_score")
	case wire.ATSScore.Grade == nil:
		return types.AnalysisResult{}, shapeError("ats_score.grade")
	case wire.ATSScore.SectionScores == nil:
		return types.AnalysisResult{}, shapeError("ats_score.section_scores")
	case wire.Skills == nil:
		return types.AnalysisResult{}, shapeError("skills")
	case wire.Skills.Extracted == nil:
		return types.AnalysisResult{}, shapeError("skills.extracted")
	}

	result := types.AnalysisResult{
		Filename: wire.Filename,
		ATSScore: types.ATSScore{
			OverallScore:    *wire.ATSScore.OverallScore,
			Grade:           *wire.ATSScore.Grade,
			SectionScores:   wire.ATSScore.SectionScores,
			Strengths:       wire.ATSScore.Strengths,
			Weaknesses:      wire.ATSScore.Weaknesses,
			Recommendations: wire.ATSScore.Recommendations,
		},
		Skills: types.SkillSet{Extracted: wire.Skills.Extracted},
	}
	if result.Filename == "" {
		result.Filename = filename
	}

	if err := result.Validate(); err != nil {
		return types.AnalysisResult{}, errors.NewDataShapeError(errors.ErrCodeBadResponseShape,
			"backend response violates result invariants", err)
	}
	return result, nil
}

func shapeError(field string) error {
	return errors.NewDataShapeError(errors.ErrCodeBadResponseShape,
		"backend response is missing a required field", nil).WithContext("field", field)
}

// Status reports endpoint and circuit breaker health for the health
// endpoint. Availability follows the breaker: an open circuit means the
// backend has been failing.
func (p *RemoteProvider) Status(_ context.Context) map[string]any {
	return map[string]any{
		"mode":            "remote",
		"available":       p.breaker.IsHealthy(),
		"endpoint":        p.endpoint,
		"circuit_breaker": p.breaker.GetStats(),
	}
}

// Close is a no-op; the HTTP client holds no resources needing shutdown.
func (p *RemoteProvider) Close() error {
	return nil
}
