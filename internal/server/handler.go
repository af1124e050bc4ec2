package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"resumelens/internal/analyzer"
	"resumelens/internal/errors"
	"resumelens/internal/observability"
	"resumelens/internal/types"
	"resumelens/internal/upload"

	"go.opentelemetry.io/otel/attribute"
)

// createSessionHandler starts a new workflow session
func (s *Server) createSessionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		_, span := tracer.Start(ctx, "api.session.create")
		defer span.End()

		sess := s.Sessions.Create(s.Provider, s.Logger)
		span.SetAttributes(attribute.String("session.id", sess.ID))

		s.Logger.Info("Session created", "session_id", sess.ID)

		writeJSONResponse(w, http.StatusCreated, SessionResponse{
			SessionID: sess.ID,
			State:     string(sess.Orchestrator.Controller().State()),
		})
	}
}

// createUploadHandler delivers a file-pick event to the session's workflow
// controller. The multipart file's metadata goes through validation; the
// content is read before the event fires and retained only when the file
// is accepted.
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.session.upload")
		defer span.End()

		sess, ok := s.Sessions.Get(r.PathValue("id"))
		if !ok {
			writeErrorResponse(w, "Session not found", "unknown or expired session ID", http.StatusNotFound)
			return
		}
		span.SetAttributes(attribute.String("session.id", sess.ID))

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", "multipart form with a 'file' part is required", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Missing file", "file part is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", closeErr)
			}
		}()

		meta := types.FileMeta{
			Name:     header.Filename,
			MIMEType: header.Header.Get("Content-Type"),
			ByteSize: header.Size,
		}
		span.SetAttributes(
			attribute.String("file.name", meta.Name),
			attribute.Int64("file.size", meta.ByteSize),
		)

		outcome, err := selectFile(sess, meta, file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Upload failed", "could not read file content", http.StatusBadRequest)
			return
		}
		if !outcome.Selected && outcome.Notice != "" {
			om.GetMetrics().RecordFileRejected(ctx, outcome.Notice)
		}

		s.writeUploadResponse(w, sess, outcome)
	}
}

// selectFile reads the upload content and then delivers the file-pick
// event to the session's controller. The read happens first: a failed
// read must leave the workflow state untouched, never a selected file
// with no content behind it.
func selectFile(sess *Session, meta types.FileMeta, r io.Reader) (upload.Outcome, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return upload.Outcome{}, err
	}

	outcome := sess.Orchestrator.Controller().Dispatch(upload.Event{
		Kind:  upload.EventFilePick,
		Files: []types.FileMeta{meta},
	})
	if outcome.Selected {
		sess.SetFileContent(content)
	}
	return outcome, nil
}

func (s *Server) writeUploadResponse(w http.ResponseWriter, sess *Session, outcome upload.Outcome) {
	controller := sess.Orchestrator.Controller()
	enabled, label := controller.Action()

	status := http.StatusOK
	if !outcome.Selected && outcome.Notice != "" {
		status = http.StatusUnprocessableEntity
	}

	writeJSONResponse(w, status, UploadResponse{
		Selected:    outcome.Selected,
		Notice:      outcome.Notice,
		State:       string(controller.State()),
		DropLabel:   controller.DropLabel(),
		ActionReady: enabled,
		ActionLabel: label,
	})
}

// createAnalyzeHandler runs the analysis for a session's selected file
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.session.analyze")
		defer span.End()

		sess, ok := s.Sessions.Get(r.PathValue("id"))
		if !ok {
			writeErrorResponse(w, "Session not found", "unknown or expired session ID", http.StatusNotFound)
			return
		}
		span.SetAttributes(attribute.String("session.id", sess.ID))

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil && err != http.ErrNotMultipart {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", "could not parse form", http.StatusBadRequest)
			return
		}
		jobDescription := r.FormValue("job_description")
		requiredSkills := r.FormValue("required_skills")

		metrics := om.GetMetrics()
		var result types.AnalysisResult
		err := metrics.TrackAnalysis(ctx, s.AppConfig.Analyzer.Mode, func(ctx context.Context) error {
			var runErr error
			result, runErr = sess.Orchestrator.Run(ctx,
				bytes.NewReader(sess.FileContent()), jobDescription, requiredSkills)
			return runErr
		})
		if err != nil {
			span.RecordError(err)
			s.writeAnalysisError(w, err)
			return
		}

		cfg := s.AppConfig.Charts
		sess.SetResult(result, cfg.SkillsWidth, cfg.SkillsHeight, cfg.TrendWidth, cfg.TrendHeight)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("ats.score", result.ATSScore.OverallScore),
			attribute.String("ats.grade", result.ATSScore.Grade),
		)

		writeJSONResponse(w, http.StatusOK, AnalyzeResponse{
			Success:  true,
			Filename: result.Filename,
			ATSScore: result.ATSScore,
			Skills:   result.Skills,
		})
	}
}

// writeAnalysisError maps an analysis error to a status code and the
// user-facing message the workflow defines for it.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	message := analyzer.UserMessage(err)

	if appErr, ok := err.(*errors.AppError); ok {
		switch {
		case appErr.Code == errors.ErrCodeNoFileSelected:
			writeErrorResponse(w, "No file selected", message, http.StatusBadRequest)
			return
		case appErr.Code == errors.ErrCodeAnalysisBusy:
			writeErrorResponse(w, "Analysis in flight", message, http.StatusConflict)
			return
		case appErr.Type == errors.ErrorTypeValidation:
			writeErrorResponse(w, "Invalid file", message, http.StatusUnprocessableEntity)
			return
		}
	}

	writeErrorResponse(w, "Analysis failed", message, http.StatusBadGateway)
}

// createReportHandler returns the rendered report view for a session
func (s *Server) createReportHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumelens.api")
		_, span := tracer.Start(r.Context(), "api.session.report")
		defer span.End()

		sess, ok := s.Sessions.Get(r.PathValue("id"))
		if !ok {
			writeErrorResponse(w, "Session not found", "unknown or expired session ID", http.StatusNotFound)
			return
		}
		span.SetAttributes(attribute.String("session.id", sess.ID))

		view, ok := sess.Report()
		if !ok {
			writeErrorResponse(w, "No report", "no analysis has completed for this session", http.StatusNotFound)
			return
		}

		writeJSONResponse(w, http.StatusOK, view)
	}
}

// createChartHandler serves a chart PNG for a session's last result
func (s *Server) createChartHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.session.chart")
		defer span.End()

		sess, ok := s.Sessions.Get(r.PathValue("id"))
		if !ok {
			writeErrorResponse(w, "Session not found", "unknown or expired session ID", http.StatusNotFound)
			return
		}

		// The documented chart URL carries a .png suffix; the kind is the
		// path segment without it.
		kind := strings.TrimSuffix(r.PathValue("kind"), ".png")
		span.SetAttributes(
			attribute.String("session.id", sess.ID),
			attribute.String("chart.kind", kind),
		)

		surface, ok := sess.Chart(kind)
		if !ok {
			writeErrorResponse(w, "No chart", "no analysis has completed for this session, or unknown chart kind", http.StatusNotFound)
			return
		}

		om.GetMetrics().RecordChartRendered(ctx, kind)

		w.Header().Set("Content-Type", "image/png")
		if err := surface.EncodePNG(w); err != nil {
			span.RecordError(err)
			s.Logger.LogError(err, "Failed to encode chart", "kind", kind)
		}
	}
}

// writeJSONResponse writes a JSON body with the given status code
func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				om.GetMetrics().RecordRateLimitHit(r.Context(), r.URL.Path)
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
