package types

import "fmt"

// Section names composing the overall ATS score, in display order.
var SectionOrder = []string{"formatting", "keywords", "experience", "education", "skills"}

// FileMeta describes a candidate resume file. The raw content is owned by
// the caller and handed to the analyzer separately; FileMeta itself is
// metadata only so validation stays a pure predicate.
type FileMeta struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	ByteSize int64  `json:"byteSize"`
}

// SizeKB returns the file size in kilobytes, the unit shown on the
// upload affordance.
func (f FileMeta) SizeKB() float64 {
	return float64(f.ByteSize) / 1024
}

// DisplayLabel is the text shown on the drop target once a file is
// selected: name plus size in KB with two decimals.
func (f FileMeta) DisplayLabel() string {
	return fmt.Sprintf("%s (%.2f KB)", f.Name, f.SizeKB())
}

// ExtractedSkill is one skill found in the resume
type ExtractedSkill struct {
	Name     string  `json:"skill"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// SkillSet holds extracted skills in backend order
type SkillSet struct {
	Extracted []ExtractedSkill `json:"extracted"`
}

// ATSScore is the multi-dimensional score report for a single resume
type ATSScore struct {
	OverallScore    float64            `json:"overall_score"`
	Grade           string             `json:"grade"`
	SectionScores   map[string]float64 `json:"section_scores"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
}

// AnalysisResult is the normalized payload produced by one analysis run.
// It is treated as immutable: a new analysis produces a new instance.
type AnalysisResult struct {
	Filename string   `json:"filename,omitempty"`
	ATSScore ATSScore `json:"ats_score"`
	Skills   SkillSet `json:"skills"`
}

// Validate checks the AnalysisResult invariants: exactly the five fixed
// section keys, and every score within [0,100].
func (r AnalysisResult) Validate() error {
	if r.ATSScore.OverallScore < 0 || r.ATSScore.OverallScore > 100 {
		return fmt.Errorf("overall score %.2f out of range [0,100]", r.ATSScore.OverallScore)
	}
	if len(r.ATSScore.SectionScores) != len(SectionOrder) {
		return fmt.Errorf("expected %d section scores, got %d", len(SectionOrder), len(r.ATSScore.SectionScores))
	}
	for _, section := range SectionOrder {
		score, ok := r.ATSScore.SectionScores[section]
		if !ok {
			return fmt.Errorf("missing section score: %s", section)
		}
		if score < 0 || score > 100 {
			return fmt.Errorf("section %s score %.2f out of range [0,100]", section, score)
		}
	}
	return nil
}

// WorkflowState tracks where the analysis workflow currently is.
type WorkflowState string

const (
	StateIdle         WorkflowState = "idle"          // no file selected
	StateFileSelected WorkflowState = "file-selected" // validated file held, action enabled
	StateAnalyzing    WorkflowState = "analyzing"     // analysis in flight, action disabled
	StateResultReady  WorkflowState = "result-ready"  // last AnalysisResult available
)
