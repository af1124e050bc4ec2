package common

import (
	"bytes"
	"context"
	"fmt"

	"resumelens/internal/analyzer"
	"resumelens/internal/errors"
	"resumelens/internal/types"
	"resumelens/internal/upload"
)

// AnalyzeParams carries the inputs of one analysis run.
type AnalyzeParams struct {
	ResumePath     string
	JobDescription string
	RequiredSkills string
}

// RunAnalysis encapsulates the common logic of file-based analysis: read
// the resume, push it through the upload workflow as a picked file, then
// drive the orchestrator. A validation rejection surfaces the same notice
// a user would see on the upload affordance.
func RunAnalysis(ctx context.Context, logger *errors.Logger, orch *analyzer.Orchestrator, params AnalyzeParams) (types.AnalysisResult, error) {
	fileProcessor := NewFileProcessor(logger)

	meta, content, err := fileProcessor.ReadResume(params.ResumePath)
	if err != nil {
		return types.AnalysisResult{}, err
	}

	outcome := orch.Controller().Dispatch(upload.Event{
		Kind:  upload.EventFilePick,
		Files: []types.FileMeta{meta},
	})
	if !outcome.Selected {
		return types.AnalysisResult{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			outcome.Notice, fmt.Errorf("file rejected: %s", meta.Name))
	}

	return orch.Run(ctx, bytes.NewReader(content), params.JobDescription, params.RequiredSkills)
}
