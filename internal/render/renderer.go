package render

import (
	"fmt"
	"math"
	"time"

	"resumelens/internal/types"
)

// Score ring geometry and animation timings. The ring is an SVG-style
// stroked circle: progress is expressed by offsetting the dash pattern,
// so a full circumference offset reads as 0% and a zero offset as 100%.
const (
	RingRadius       = 90.0
	RingTransition   = 1500 * time.Millisecond
	RingStartDelay   = 100 * time.Millisecond
	BarRevealDelay   = 300 * time.Millisecond
	CounterTickEvery = 16 * time.Millisecond
)

// RingCircumference is the dash length of the score ring stroke.
func RingCircumference() float64 {
	return 2 * math.Pi * RingRadius
}

// ScoreRing describes the animated ring for the overall score.
type ScoreRing struct {
	Radius             float64
	Circumference      float64
	StrokeOffset       float64
	TransitionDuration time.Duration
	StartDelay         time.Duration
}

// SectionBar is one horizontal score bar.
type SectionBar struct {
	Section      string
	Score        float64
	WidthPercent float64
	Label        string
	RevealDelay  time.Duration
}

// SkillBadge is one pill in the skills panel.
type SkillBadge struct {
	Name     string
	Category string
}

// ReportView is the complete presentation model derived from one
// AnalysisResult. It is rebuilt from scratch on every render; nothing is
// patched in place, so stale fragments from a previous result cannot
// survive.
type ReportView struct {
	Visible bool

	Filename  string
	ScoreText string
	Grade     string
	Ring      ScoreRing

	Bars            []SectionBar
	Strengths       []string
	Weaknesses      []string
	Skills          []SkillBadge
	Recommendations []string

	// CounterStep is the tick interval for the animated score counters.
	CounterStep time.Duration
}

// Render derives the presentation model from an analysis result. It is a
// pure function of its input: same result, same view.
func Render(result types.AnalysisResult) ReportView {
	view := ReportView{
		Visible:     true,
		Filename:    result.Filename,
		ScoreText:   fmt.Sprintf("%d", int(math.Round(result.ATSScore.OverallScore))),
		Grade:       result.ATSScore.Grade,
		Ring:        ringFor(result.ATSScore.OverallScore),
		CounterStep: CounterTickEvery,
	}

	// Bars follow the fixed section order, not map iteration order.
	for _, section := range types.SectionOrder {
		score := result.ATSScore.SectionScores[section]
		view.Bars = append(view.Bars, SectionBar{
			Section:      section,
			Score:        score,
			WidthPercent: score,
			Label:        fmt.Sprintf("%d%%", int(math.Round(score))),
			RevealDelay:  BarRevealDelay,
		})
	}

	view.Strengths = append(view.Strengths, result.ATSScore.Strengths...)
	view.Weaknesses = append(view.Weaknesses, result.ATSScore.Weaknesses...)
	view.Recommendations = append(view.Recommendations, result.ATSScore.Recommendations...)

	for _, skill := range result.Skills.Extracted {
		view.Skills = append(view.Skills, SkillBadge{
			Name:     skill.Name,
			Category: skill.Category,
		})
	}

	return view
}

// ringFor computes the stroke offset for a score. Score 0 leaves the full
// circumference offset (empty ring); score 100 brings it to zero.
func ringFor(score float64) ScoreRing {
	c := RingCircumference()
	return ScoreRing{
		Radius:             RingRadius,
		Circumference:      c,
		StrokeOffset:       c - (score/100)*c,
		TransitionDuration: RingTransition,
		StartDelay:         RingStartDelay,
	}
}
