package charts

import (
	"fmt"

	"github.com/fogleman/gg"

	"resumelens/internal/types"
)

// Bar chart geometry. Padding applies on both sides, so the usable track
// width is surface width minus twice the padding.
const (
	BarHeight = 40.0
	BarGap    = 20.0
	Padding   = 40.0
)

// TrackWidth returns the horizontal space available to a bar on a surface
// of the given pixel width.
func TrackWidth(surfaceWidth int) float64 {
	return float64(surfaceWidth) - 2*Padding
}

// DrawSkillBars renders the extracted skills as horizontal weight bars,
// one per skill in extraction order. Each bar's filled width is the skill
// weight (0..1) times the track width. Drawing is a no-op when the
// surface already holds a chart.
func (s *Surface) DrawSkillBars(skills []types.ExtractedSkill) {
	if !s.beginDraw() {
		return
	}

	dc := s.dc
	track := TrackWidth(s.width)

	dc.SetColor(colorText)
	dc.DrawString("Skill Match", Padding, Padding-14)

	y := Padding
	for _, skill := range skills {
		// Label row above the bar: name left, category right-aligned.
		dc.SetColor(colorText)
		dc.DrawString(skill.Name, Padding, y+10)
		dc.SetColor(colorFaint)
		dc.DrawStringAnchored(skill.Category, Padding+track, y+10, 1, 0)

		barTop := y + 14
		barH := BarHeight - 14

		dc.SetColor(colorTrack)
		dc.DrawRoundedRectangle(Padding, barTop, track, barH, barH/2)
		dc.Fill()

		fill := skill.Weight * track
		if fill > 0 {
			grad := gg.NewLinearGradient(Padding, 0, Padding+fill, 0)
			grad.AddColorStop(0, gradientStart)
			grad.AddColorStop(1, gradientEnd)
			dc.SetFillStyle(grad)
			dc.DrawRoundedRectangle(Padding, barTop, fill, barH, barH/2)
			dc.Fill()
		}

		dc.SetColor(colorText)
		dc.DrawStringAnchored(fmt.Sprintf("%d%%", int(skill.Weight*100+0.5)),
			Padding+track, barTop+barH/2, 1, 0.35)

		y += BarHeight + BarGap
	}
}

// SkillsChartHeight returns the surface height needed to fit n skill bars
// with the standard padding.
func SkillsChartHeight(n int) int {
	return int(2*Padding + float64(n)*BarHeight + float64(n-1)*BarGap)
}
