package analyzer

import (
	"context"
	"io"

	"resumelens/internal/errors"
	"resumelens/internal/types"
	"resumelens/internal/upload"
)

// MsgAnalysisFailed is shown to the user whenever an analysis fails after
// being dispatched, whatever the underlying cause. Diagnostic detail goes
// to the log, never to the user.
const MsgAnalysisFailed = "Failed to analyze resume. Please try again."

// Orchestrator drives a single analysis run: it flips the workflow into
// the busy state, hands the resume to the provider, and restores the
// controls on every exit path.
type Orchestrator struct {
	controller *upload.Controller
	provider   Provider
	logger     *errors.Logger
}

// NewOrchestrator wires a controller to an analysis provider.
func NewOrchestrator(controller *upload.Controller, provider Provider, logger *errors.Logger) *Orchestrator {
	return &Orchestrator{
		controller: controller,
		provider:   provider,
		logger:     logger,
	}
}

// Controller exposes the workflow controller for callers that dispatch
// host-UI events directly.
func (o *Orchestrator) Controller() *upload.Controller {
	return o.controller
}

// Provider exposes the underlying analysis provider.
func (o *Orchestrator) Provider() Provider {
	return o.provider
}

// Run performs one analysis of the selected file. The precondition checks
// (a file is selected, no run is in flight) fail without side effects;
// once a run starts, the controls are restored no matter how it ends.
func (o *Orchestrator) Run(ctx context.Context, content io.Reader, jobDescription, requiredSkills string) (types.AnalysisResult, error) {
	file, err := o.controller.BeginAnalysis()
	if err != nil {
		o.logger.Debug("Analysis refused", "reason", err.Error())
		return types.AnalysisResult{}, err
	}

	o.logger.Info("Analysis started",
		"filename", file.Name,
		"size_kb", file.SizeKB())

	result, err := o.provider.Analyze(ctx, file, content, jobDescription, requiredSkills)
	if err != nil {
		o.controller.FinishAnalysis(false)
		o.logger.LogError(err, "Analysis failed", "filename", file.Name)
		return types.AnalysisResult{}, err
	}

	o.controller.FinishAnalysis(true)
	o.logger.Info("Analysis completed",
		"filename", file.Name,
		"overall_score", result.ATSScore.OverallScore,
		"grade", result.ATSScore.Grade,
		"skills", len(result.Skills.Extracted))
	return result, nil
}

// UserMessage maps an analysis error to the notice shown to the user.
// Precondition failures keep their own wording; everything that happens
// after dispatch collapses to a single retry message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := err.(*errors.AppError); ok {
		switch appErr.Type {
		case errors.ErrorTypePrecondition:
			if appErr.Code == errors.ErrCodeNoFileSelected {
				return upload.MsgNoFileSelected
			}
			return appErr.Message
		case errors.ErrorTypeValidation:
			return appErr.Message
		}
	}
	return MsgAnalysisFailed
}
