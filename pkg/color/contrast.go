package color

import "math"

// Contrast thresholds for normal and large text.
const (
	MinRatioNormal = 4.5
	MinRatioLarge  = 3.0

	// DefaultLargeTextPt is the size at which regular text counts as large.
	DefaultLargeTextPt = 18.0

	// DefaultLargeBoldTextPt is the size at which bold text counts as large.
	DefaultLargeBoldTextPt = 14.0
)

// channelLinear converts an sRGB channel to linear light.
func channelLinear(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance returns the relative luminance of an opaque color.
func Luminance(c Color) float64 {
	c.Color = c.Clamped()
	return 0.2126*channelLinear(c.R) + 0.7152*channelLinear(c.G) + 0.0722*channelLinear(c.B)
}

// ContrastRatio returns (Lmax + 0.05) / (Lmin + 0.05) for two opaque colors.
// The result is in [1, 21] and does not depend on argument order.
func ContrastRatio(a, b Color) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// TextContrast composites fg over bg and returns their contrast ratio.
// A translucent background is first composited over white.
func TextContrast(fg, bg Color) float64 {
	bg = Composite(bg, White)
	return ContrastRatio(Composite(fg, bg), bg)
}

// RequiredRatio returns the minimum ratio for text of sizePt points, where
// text at or above largePt is large.
func RequiredRatio(sizePt, largePt float64) float64 {
	if largePt <= 0 {
		largePt = DefaultLargeTextPt
	}
	if sizePt >= largePt {
		return MinRatioLarge
	}
	return MinRatioNormal
}

// Passes reports whether ratio meets the required minimum.
func Passes(ratio, required float64) bool {
	return ratio >= required
}
