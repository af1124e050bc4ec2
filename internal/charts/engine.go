package charts

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"resumelens/internal/errors"
)

// Brand gradient endpoints shared by every chart.
var (
	gradientStart = color.NRGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff} // #667eea
	gradientEnd   = color.NRGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff} // #764ba2

	colorTrack = color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	colorGrid  = color.NRGBA{R: 0xcb, G: 0xd5, B: 0xe1, A: 0xff}
	colorText  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	colorFaint = color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}
)

// Surface is a fixed-size raster target a chart draws onto exactly once.
// The drawn marker makes repeated draw requests idempotent: the second
// draw on the same surface is a no-op, matching the draw-once contract of
// each chart slot in a report.
type Surface struct {
	dc     *gg.Context
	width  int
	height int
	drawn  bool
}

// NewSurface allocates a white surface of the given pixel dimensions.
func NewSurface(width, height int) *Surface {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	return &Surface{dc: dc, width: width, height: height}
}

// Drawn reports whether a chart has been rendered onto this surface.
func (s *Surface) Drawn() bool {
	return s.drawn
}

// Reset clears the surface back to blank so a new result can be drawn.
func (s *Surface) Reset() {
	s.dc.SetColor(color.White)
	s.dc.Clear()
	s.dc.SetFontFace(basicfont.Face7x13)
	s.drawn = false
}

// EncodePNG writes the surface as a PNG image.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return errors.NewInternalError(errors.ErrCodeChartRenderFailed,
			"failed to encode chart PNG", err)
	}
	return nil
}

// beginDraw claims the surface for a single draw. It returns false when
// the surface already holds a chart.
func (s *Surface) beginDraw() bool {
	if s.drawn {
		return false
	}
	s.drawn = true
	return true
}
