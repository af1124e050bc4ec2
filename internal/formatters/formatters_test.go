package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumelens/internal/types"
)

func sampleResult() types.AnalysisResult {
	return types.AnalysisResult{
		Filename: "resume.pdf",
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
			Strengths:       []string{"Clear section structure"},
			Weaknesses:      []string{"Missing professional summary"},
			Recommendations: []string{"Add more role-specific keywords", "Quantify impact"},
		},
		Skills: types.SkillSet{
			Extracted: []types.ExtractedSkill{
				{Name: "Go", Category: "Programming Languages", Weight: 0.9},
			},
		},
	}
}

func TestJSONFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleResult(), "json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded types.AnalysisResult
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ATSScore.OverallScore != 82.5 {
		t.Errorf("expected score 82.5 after round trip, got %v", decoded.ATSScore.OverallScore)
	}
	if decoded.Skills.Extracted[0].Name != "Go" {
		t.Errorf("expected skill Go after round trip, got %q", decoded.Skills.Extracted[0].Name)
	}
}

func TestTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleResult(), "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	wantFragments := []string{
		"=== ATS ANALYSIS ===",
		"File: resume.pdf",
		"Overall Score: 82.5/100 (Grade B)",
		"Section Scores:",
		"+ Clear section structure",
		"- Missing professional summary",
		"=== EXTRACTED SKILLS ===",
		"Go (Programming Languages, weight 0.90)",
		"=== RECOMMENDATIONS ===",
		"1. Add more role-specific keywords",
		"2. Quantify impact",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("text output missing %q", fragment)
		}
	}

	// Sections appear in display order
	for i := 1; i < len(types.SectionOrder); i++ {
		prev := strings.Index(output, types.SectionOrder[i-1])
		cur := strings.Index(output, types.SectionOrder[i])
		if prev == -1 || cur == -1 || prev > cur {
			t.Errorf("section %q must appear before %q", types.SectionOrder[i-1], types.SectionOrder[i])
		}
	}
}

func TestMarkdownFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleResult(), "markdown")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	wantFragments := []string{
		"# ATS Analysis",
		"**Overall Score:** 82.5/100 (Grade B)",
		"## Section Scores",
		"| Section | Score |",
		"| formatting | 85% |",
		"## Extracted Skills",
		"| Go | Programming Languages | 0.90 |",
		"## Recommendations",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("markdown output missing %q", fragment)
		}
	}
}

func TestFormatterFallsBackToJSON(t *testing.T) {
	registry := NewFormatterRegistry()

	// json has an "any" formatter, so arbitrary data works
	output, err := registry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, `"key": "value"`) {
		t.Errorf("unexpected output %q", output)
	}

	// text has no "any" formatter, so arbitrary data is rejected
	if _, err := registry.Format(map[string]string{"key": "value"}, "text"); err == nil {
		t.Error("expected an error for unformattable data")
	}
}

func TestFormatterUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleResult(), "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := NewFormatterRegistry().GetSupportedFormats()
	want := map[string]bool{"json": true, "text": true, "markdown": true}
	if len(formats) != len(want) {
		t.Fatalf("expected %d formats, got %v", len(want), formats)
	}
	for _, format := range formats {
		if !want[format] {
			t.Errorf("unexpected format %q", format)
		}
	}
}
