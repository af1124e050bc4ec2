package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS ANALYSIS ===\n\n")
	if result.Filename != "" {
		output.WriteString(fmt.Sprintf("File: %s\n", result.Filename))
	}
	output.WriteString(fmt.Sprintf("Overall Score: %.1f/100 (Grade %s)\n\n",
		result.ATSScore.OverallScore, result.ATSScore.Grade))

	output.WriteString("Section Scores:\n")
	for _, section := range types.SectionOrder {
		output.WriteString(fmt.Sprintf("  %-12s %3.0f%%\n", section, result.ATSScore.SectionScores[section]))
	}
	output.WriteString("\n")

	if len(result.ATSScore.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, s := range result.ATSScore.Strengths {
			output.WriteString(fmt.Sprintf("  + %s\n", s))
		}
		output.WriteString("\n")
	}

	if len(result.ATSScore.Weaknesses) > 0 {
		output.WriteString("Weaknesses:\n")
		for _, w := range result.ATSScore.Weaknesses {
			output.WriteString(fmt.Sprintf("  - %s\n", w))
		}
		output.WriteString("\n")
	}

	if len(result.Skills.Extracted) > 0 {
		output.WriteString("=== EXTRACTED SKILLS ===\n\n")
		for _, skill := range result.Skills.Extracted {
			output.WriteString(fmt.Sprintf("  %s (%s, weight %.2f)\n",
				skill.Name, skill.Category, skill.Weight))
		}
		output.WriteString("\n")
	}

	if len(result.ATSScore.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n\n")
		for i, rec := range result.ATSScore.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Analysis\n\n")
	if result.Filename != "" {
		output.WriteString(fmt.Sprintf("**File:** %s\n\n", result.Filename))
	}
	output.WriteString(fmt.Sprintf("**Overall Score:** %.1f/100 (Grade %s)\n\n",
		result.ATSScore.OverallScore, result.ATSScore.Grade))

	output.WriteString("## Section Scores\n\n")
	output.WriteString("| Section | Score |\n")
	output.WriteString("|---------|-------|\n")
	for _, section := range types.SectionOrder {
		output.WriteString(fmt.Sprintf("| %s | %.0f%% |\n", section, result.ATSScore.SectionScores[section]))
	}
	output.WriteString("\n")

	if len(result.ATSScore.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, s := range result.ATSScore.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}

	if len(result.ATSScore.Weaknesses) > 0 {
		output.WriteString("## Weaknesses\n\n")
		for _, w := range result.ATSScore.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", w))
		}
		output.WriteString("\n")
	}

	if len(result.Skills.Extracted) > 0 {
		output.WriteString("## Extracted Skills\n\n")
		output.WriteString("| Skill | Category | Weight |\n")
		output.WriteString("|-------|----------|--------|\n")
		for _, skill := range result.Skills.Extracted {
			output.WriteString(fmt.Sprintf("| %s | %s | %.2f |\n",
				skill.Name, skill.Category, skill.Weight))
		}
		output.WriteString("\n")
	}

	if len(result.ATSScore.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range result.ATSScore.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// GlobalRegistry is the default formatter registry instance
var GlobalRegistry = NewFormatterRegistry()
