package charts

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

// TrendPoints is the fixed number of samples on the trend chart, one per
// month of the trailing year.
const TrendPoints = 12

// GridLines is the number of horizontal reference lines.
const GridLines = 5

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// TrendPoint is one sample on the score trend line.
type TrendPoint struct {
	Label string
	Value float64
}

// ScoreTrend derives a deterministic twelve-point series that ends at the
// given overall score. Earlier months ramp toward the final score with a
// gentle oscillation, so the chart always tells the same story for the
// same result.
func ScoreTrend(overall float64) []TrendPoint {
	points := make([]TrendPoint, TrendPoints)
	base := overall * 0.7
	for i := range points {
		progress := float64(i) / float64(TrendPoints-1)
		wobble := math.Sin(float64(i)*1.3) * overall * 0.03
		value := base + (overall-base)*progress + wobble
		if i == TrendPoints-1 {
			value = overall
		}
		points[i] = TrendPoint{
			Label: monthLabels[i%len(monthLabels)],
			Value: math.Max(0, math.Min(100, value)),
		}
	}
	return points
}

// DrawTrend renders the score trend as a gradient polyline with circular
// markers. Values are normalized against the series maximum so the line
// uses the full vertical range. Drawing is a no-op when the surface
// already holds a chart.
func (s *Surface) DrawTrend(points []TrendPoint) {
	if !s.beginDraw() {
		return
	}
	if len(points) == 0 {
		return
	}

	dc := s.dc
	plotW := float64(s.width) - 2*Padding
	plotH := float64(s.height) - 2*Padding

	dc.SetColor(colorText)
	dc.DrawString("Score Trend", Padding, Padding-14)

	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	if maxValue == 0 {
		maxValue = 1
	}

	// Horizontal gridlines with their value labels.
	dc.SetLineWidth(1)
	for i := 0; i < GridLines; i++ {
		frac := float64(i) / float64(GridLines-1)
		y := Padding + plotH*(1-frac)
		dc.SetColor(colorGrid)
		dc.DrawLine(Padding, y, Padding+plotW, y)
		dc.Stroke()
		dc.SetColor(colorFaint)
		dc.DrawStringAnchored(fmt.Sprintf("%d", int(maxValue*frac+0.5)),
			Padding-6, y, 1, 0.35)
	}

	xFor := func(i int) float64 {
		if len(points) == 1 {
			return Padding + plotW/2
		}
		return Padding + plotW*float64(i)/float64(len(points)-1)
	}
	yFor := func(v float64) float64 {
		return Padding + plotH*(1-v/maxValue)
	}

	grad := gg.NewLinearGradient(Padding, 0, Padding+plotW, 0)
	grad.AddColorStop(0, gradientStart)
	grad.AddColorStop(1, gradientEnd)

	dc.SetStrokeStyle(grad)
	dc.SetLineWidth(3)
	for i, p := range points {
		dc.LineTo(xFor(i), yFor(p.Value))
	}
	dc.Stroke()

	// Markers and month labels.
	for i, p := range points {
		x, y := xFor(i), yFor(p.Value)
		dc.SetColor(gradientEnd)
		dc.DrawCircle(x, y, 4)
		dc.Fill()
		dc.SetColor(colorFaint)
		dc.DrawStringAnchored(p.Label, x, float64(s.height)-Padding+16, 0.5, 0.35)
	}
}
