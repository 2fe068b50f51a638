// Package color parses CSS color values and computes WCAG contrast ratios.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with alpha. Channels are in [0, 1].
type Color struct {
	colorful.Color

	// A is the alpha channel; 1 is fully opaque.
	A float64
}

// White and Black are the opaque extremes.
var (
	White = Color{Color: colorful.Color{R: 1, G: 1, B: 1}, A: 1}
	Black = Color{Color: colorful.Color{R: 0, G: 0, B: 0}, A: 1}
)

// ParseError reports a CSS color or length value that could not be parsed.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid color %q: %s", e.Value, e.Reason)
}

// IsOpaque reports whether the color has no transparency.
func (c Color) IsOpaque() bool {
	return c.A >= 1
}

// IsTransparent reports whether the color is fully transparent.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return c.Clamped().Hex()
}

// Parse parses a CSS color value.
func Parse(value string) (Color, error) {
	raw := value
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))

	switch {
	case value == "":
		return Color{}, &ParseError{Value: raw, Reason: "empty value"}
	case value == "transparent":
		return Color{}, nil
	case strings.HasPrefix(value, "#"):
		return parseHex(raw, value)
	case strings.HasPrefix(value, "rgb"):
		return parseRGB(raw, value)
	case strings.HasPrefix(value, "hsl"):
		return parseHSL(raw, value)
	}

	if hex, ok := namedColors[value]; ok {
		c, err := colorful.Hex(hex)
		if err != nil {
			return Color{}, &ParseError{Value: raw, Reason: err.Error()}
		}
		return Color{Color: c, A: 1}, nil
	}

	return Color{}, &ParseError{Value: raw, Reason: "unknown color"}
}

func parseHex(raw, value string) (Color, error) {
	digits := value[1:]
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return Color{}, &ParseError{Value: raw, Reason: "invalid hex digit"}
		}
	}

	alpha := 1.0
	switch len(digits) {
	case 3, 6:
	case 4:
		a, _ := strconv.ParseUint(digits[3:], 16, 8)
		alpha = float64(a) / 15
		digits = digits[:3]
	case 8:
		a, _ := strconv.ParseUint(digits[6:], 16, 8)
		alpha = float64(a) / 255
		digits = digits[:6]
	default:
		return Color{}, &ParseError{Value: raw, Reason: "hex colors need 3, 4, 6 or 8 digits"}
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, &ParseError{Value: raw, Reason: err.Error()}
	}
	return Color{Color: c, A: alpha}, nil
}

// functionArgs splits "name(a, b, c / d)" into its arguments.
func functionArgs(raw, value string) ([]string, error) {
	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return nil, &ParseError{Value: raw, Reason: "missing parentheses"}
	}
	inner := value[open+1 : len(value)-1]
	inner = strings.NewReplacer(",", " ", "/", " ").Replace(inner)
	args := strings.Fields(inner)
	if len(args) != 3 && len(args) != 4 {
		return nil, &ParseError{Value: raw, Reason: "expected 3 or 4 arguments"}
	}
	return args, nil
}

func parseRGB(raw, value string) (Color, error) {
	args, err := functionArgs(raw, value)
	if err != nil {
		return Color{}, err
	}

	var channels [3]float64
	for i := range 3 {
		arg := args[i]
		if pct, ok := strings.CutSuffix(arg, "%"); ok {
			v, ok := parseFinite(pct)
			if !ok {
				return Color{}, &ParseError{Value: raw, Reason: "invalid percentage " + arg}
			}
			channels[i] = clamp01(v / 100)
			continue
		}
		v, ok := parseFinite(arg)
		if !ok {
			return Color{}, &ParseError{Value: raw, Reason: "invalid channel " + arg}
		}
		channels[i] = clamp01(v / 255)
	}

	alpha, err := parseAlpha(raw, args)
	if err != nil {
		return Color{}, err
	}

	return Color{Color: colorful.Color{R: channels[0], G: channels[1], B: channels[2]}, A: alpha}, nil
}

func parseHSL(raw, value string) (Color, error) {
	args, err := functionArgs(raw, value)
	if err != nil {
		return Color{}, err
	}

	hue, ok := parseFinite(strings.TrimSuffix(args[0], "deg"))
	if !ok {
		return Color{}, &ParseError{Value: raw, Reason: "invalid hue " + args[0]}
	}
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}

	var sl [2]float64
	for i, arg := range args[1:3] {
		pct, ok := strings.CutSuffix(arg, "%")
		if !ok {
			return Color{}, &ParseError{Value: raw, Reason: "saturation and lightness must be percentages"}
		}
		v, ok := parseFinite(pct)
		if !ok {
			return Color{}, &ParseError{Value: raw, Reason: "invalid percentage " + arg}
		}
		sl[i] = clamp01(v / 100)
	}

	alpha, err := parseAlpha(raw, args)
	if err != nil {
		return Color{}, err
	}

	return Color{Color: colorful.Hsl(hue, sl[0], sl[1]), A: alpha}, nil
}

func parseAlpha(raw string, args []string) (float64, error) {
	if len(args) < 4 {
		return 1, nil
	}
	arg := args[3]
	if pct, ok := strings.CutSuffix(arg, "%"); ok {
		v, ok := parseFinite(pct)
		if !ok {
			return 0, &ParseError{Value: raw, Reason: "invalid alpha " + arg}
		}
		return clamp01(v / 100), nil
	}
	v, ok := parseFinite(arg)
	if !ok {
		return 0, &ParseError{Value: raw, Reason: "invalid alpha " + arg}
	}
	return clamp01(v), nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Composite blends a (possibly translucent) foreground over an opaque background.
func Composite(fg, bg Color) Color {
	if fg.IsOpaque() {
		return fg
	}
	a := fg.A
	return Color{
		Color: colorful.Color{
			R: fg.R*a + bg.R*(1-a),
			G: fg.G*a + bg.G*(1-a),
			B: fg.B*a + bg.B*(1-a),
		},
		A: 1,
	}
}
