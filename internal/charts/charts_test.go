package charts

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"resumelens/internal/types"
)

func sampleSkills() []types.ExtractedSkill {
	return []types.ExtractedSkill{
		{Name: "Go", Category: "Programming Languages", Weight: 0.9},
		{Name: "AWS", Category: "Cloud & DevOps", Weight: 0.95},
		{Name: "PostgreSQL", Category: "Databases", Weight: 0.85},
	}
}

func TestTrackWidth(t *testing.T) {
	if got := TrackWidth(600); got != 600-2*Padding {
		t.Errorf("expected track width %v, got %v", 600-2*Padding, got)
	}
}

func TestSkillsChartHeight(t *testing.T) {
	// 2*40 padding + 3*40 bars + 2*20 gaps
	if got := SkillsChartHeight(3); got != 240 {
		t.Errorf("expected height 240 for 3 bars, got %d", got)
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestDrawSkillBarsFillWidth(t *testing.T) {
	const width = 700
	const weight = 0.95

	surface := NewSurface(width, SkillsChartHeight(1))
	surface.DrawSkillBars([]types.ExtractedSkill{
		{Name: "Go", Category: "Programming Languages", Weight: weight},
	})

	track := TrackWidth(width)
	fillEnd := int(Padding + weight*track)
	barCenterY := int(Padding + 14 + (BarHeight-14)/2)

	img := surface.dc.Image()

	// Just inside the fill end: gradient paint, neither track nor blank
	inside := img.At(fillEnd-2, barCenterY)
	if sameColor(inside, colorTrack) || sameColor(inside, color.White) {
		t.Errorf("pixel at x=%d inside the fill must be gradient-colored, got %v", fillEnd-2, inside)
	}

	// Just past the fill end: the bare track shows through
	outside := img.At(fillEnd+3, barCenterY)
	if !sameColor(outside, colorTrack) {
		t.Errorf("pixel at x=%d past the fill must be the track color, got %v", fillEnd+3, outside)
	}
}

func TestSurfaceDrawOnce(t *testing.T) {
	surface := NewSurface(600, SkillsChartHeight(3))
	if surface.Drawn() {
		t.Fatal("a fresh surface must not be marked drawn")
	}

	surface.DrawSkillBars(sampleSkills())
	if !surface.Drawn() {
		t.Fatal("surface must be marked drawn after the first draw")
	}

	var first bytes.Buffer
	if err := surface.EncodePNG(&first); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	// The second draw is a no-op: same pixels out
	surface.DrawSkillBars(sampleSkills()[:1])
	var second bytes.Buffer
	if err := surface.EncodePNG(&second); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("a repeated draw must not change the surface")
	}
}

func TestSurfaceReset(t *testing.T) {
	surface := NewSurface(600, 200)
	surface.DrawTrend(ScoreTrend(82.5))
	if !surface.Drawn() {
		t.Fatal("surface must be marked drawn")
	}

	surface.Reset()
	if surface.Drawn() {
		t.Error("Reset must clear the drawn marker")
	}

	// A new draw succeeds after Reset
	surface.DrawTrend(ScoreTrend(64))
	if !surface.Drawn() {
		t.Error("draw after Reset must claim the surface again")
	}
}

func TestEncodePNGProducesDecodableImage(t *testing.T) {
	width, height := 600, SkillsChartHeight(3)
	surface := NewSurface(width, height)
	surface.DrawSkillBars(sampleSkills())

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		t.Errorf("expected %dx%d image, got %dx%d", width, height, bounds.Dx(), bounds.Dy())
	}
}

func TestScoreTrend(t *testing.T) {
	points := ScoreTrend(82.5)

	if len(points) != TrendPoints {
		t.Fatalf("expected %d points, got %d", TrendPoints, len(points))
	}
	if points[len(points)-1].Value != 82.5 {
		t.Errorf("last point must equal the overall score, got %v", points[len(points)-1].Value)
	}
	for i, p := range points {
		if p.Value < 0 || p.Value > 100 {
			t.Errorf("point %d value %v out of range [0,100]", i, p.Value)
		}
		if p.Label == "" {
			t.Errorf("point %d missing a month label", i)
		}
	}
	if points[0].Label != "Jan" || points[11].Label != "Dec" {
		t.Errorf("expected Jan..Dec labels, got %q..%q", points[0].Label, points[11].Label)
	}

	// Deterministic: same score, same series
	again := ScoreTrend(82.5)
	for i := range points {
		if points[i] != again[i] {
			t.Fatalf("series must be deterministic, point %d differs", i)
		}
	}
}

func TestScoreTrendClampedAtBounds(t *testing.T) {
	for _, overall := range []float64{0, 100} {
		for i, p := range ScoreTrend(overall) {
			if p.Value < 0 || p.Value > 100 {
				t.Errorf("overall %v point %d value %v out of range", overall, i, p.Value)
			}
		}
	}
}

func TestDrawTrendEmptySeries(t *testing.T) {
	surface := NewSurface(600, 200)
	surface.DrawTrend(nil)
	if !surface.Drawn() {
		t.Error("an empty draw still claims the surface")
	}
	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		t.Errorf("EncodePNG failed: %v", err)
	}
}

func BenchmarkDrawSkillBars(b *testing.B) {
	skills := sampleSkills()
	for b.Loop() {
		surface := NewSurface(600, SkillsChartHeight(len(skills)))
		surface.DrawSkillBars(skills)
	}
}
