// v0
// internal/colorcode/contrast.go
package colorcode

import colorful "github.com/lucasb-eyer/go-colorful"

const (
	// minDarkLightness is the lowest HCL lightness kept on dark backgrounds.
	minDarkLightness = 0.55
	// maxLightLightness is the highest HCL lightness kept on light backgrounds.
	maxLightLightness = 0.60
)

// AdjustForBackground clamps the perceptual lightness of c so text stays
// readable against a dark or light page. Hue, chroma and alpha are kept and
// colours that are already readable come back unchanged. Decoding never calls
// this; it is an optional step for renderers.
func AdjustForBackground(c Color, dark bool) Color {
	src := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, chroma, l := src.Hcl()
	switch {
	case dark && l < minDarkLightness:
		l = minDarkLightness
	case !dark && l > maxLightLightness:
		l = maxLightLightness
	default:
		return c
	}
	r, g, b := colorful.Hcl(h, chroma, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: c.A}
}
