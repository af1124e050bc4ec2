package render

import (
	"math"
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
			Strengths:       []string{"Clear structure"},
			Weaknesses:      []string{"Low keyword density"},
			Recommendations: []string{"Add keywords", "Quantify impact"},
		},
		Skills: types.SkillSet{
			Extracted: []types.ExtractedSkill{
				{Name: "Go", Category: "Programming Languages", Weight: 0.9},
				{Name: "AWS", Category: "Cloud & DevOps", Weight: 0.95},
			},
		},
	}
}

func TestRenderScoreRing(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		wantOffset float64
	}{
		{"empty ring at zero", 0, RingCircumference()},
		{"full ring at hundred", 100, 0},
		{"half ring at fifty", 50, RingCircumference() / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sampleResult()
			result.ATSScore.OverallScore = tt.score

			ring := Render(result).Ring
			if math.Abs(ring.StrokeOffset-tt.wantOffset) > 1e-9 {
				t.Errorf("score %v: expected offset %v, got %v", tt.score, tt.wantOffset, ring.StrokeOffset)
			}
			if ring.Radius != RingRadius {
				t.Errorf("expected radius %v, got %v", RingRadius, ring.Radius)
			}
			if ring.Circumference != RingCircumference() {
				t.Errorf("expected circumference %v, got %v", RingCircumference(), ring.Circumference)
			}
		})
	}
}

func TestRenderOffsetDecreasesWithScore(t *testing.T) {
	result := sampleResult()
	prev := math.Inf(1)
	for score := 0.0; score <= 100; score += 10 {
		result.ATSScore.OverallScore = score
		offset := Render(result).Ring.StrokeOffset
		if offset >= prev {
			t.Fatalf("offset must shrink as the score grows: score %v gave %v after %v", score, offset, prev)
		}
		prev = offset
	}
}

func TestRenderView(t *testing.T) {
	view := Render(sampleResult())

	if !view.Visible {
		t.Error("a rendered view must be visible")
	}
	if view.ScoreText != "83" {
		t.Errorf("expected score text 83 (82.5 rounded), got %q", view.ScoreText)
	}
	if view.Grade != "B" {
		t.Errorf("expected grade B, got %q", view.Grade)
	}
	if view.Filename != "resume.pdf" {
		t.Errorf("expected filename resume.pdf, got %q", view.Filename)
	}
	if view.CounterStep != CounterTickEvery {
		t.Errorf("expected counter step %v, got %v", CounterTickEvery, view.CounterStep)
	}

	if len(view.Bars) != len(types.SectionOrder) {
		t.Fatalf("expected %d bars, got %d", len(types.SectionOrder), len(view.Bars))
	}
	for i, bar := range view.Bars {
		if bar.Section != types.SectionOrder[i] {
			t.Errorf("bar %d: expected section %q, got %q", i, types.SectionOrder[i], bar.Section)
		}
		if bar.WidthPercent != bar.Score {
			t.Errorf("bar %q: width %v must equal score %v", bar.Section, bar.WidthPercent, bar.Score)
		}
		if bar.RevealDelay != BarRevealDelay {
			t.Errorf("bar %q: expected reveal delay %v, got %v", bar.Section, BarRevealDelay, bar.RevealDelay)
		}
	}
	if view.Bars[0].Label != "85%" {
		t.Errorf("expected label 85%%, got %q", view.Bars[0].Label)
	}

	if len(view.Skills) != 2 {
		t.Fatalf("expected 2 skill badges, got %d", len(view.Skills))
	}
	if view.Skills[0].Name != "Go" || view.Skills[0].Category != "Programming Languages" {
		t.Errorf("unexpected first badge %+v", view.Skills[0])
	}
	if len(view.Recommendations) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(view.Recommendations))
	}
}

func TestRenderRebuildsFromScratch(t *testing.T) {
	first := Render(sampleResult())

	next := sampleResult()
	next.Filename = "other.txt"
	next.ATSScore.Strengths = nil
	next.Skills.Extracted = next.Skills.Extracted[:1]
	second := Render(next)

	if len(second.Strengths) != 0 {
		t.Errorf("second view must not carry strengths from the first, got %v", second.Strengths)
	}
	if len(second.Skills) != 1 {
		t.Errorf("expected 1 badge in the second view, got %d", len(second.Skills))
	}
	if first.Filename != "resume.pdf" {
		t.Errorf("first view must be unaffected, got %q", first.Filename)
	}
}

func BenchmarkRender(b *testing.B) {
	result := sampleResult()
	for b.Loop() {
		view := Render(result)
		if !view.Visible {
			b.Fatal("unexpected hidden view")
		}
	}
}
