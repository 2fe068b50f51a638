package color

import (
	"math"
	"strconv"
	"strings"
)

// DefaultFontSizePt is the font size assumed when none is declared (16px).
const DefaultFontSizePt = 12.0

// Keyword sizes in points, from the CSS absolute-size table at a 16px root.
var fontSizeKeywords = map[string]float64{
	"xx-small":  6.75,
	"x-small":   7.5,
	"small":     9.75,
	"medium":    12,
	"large":     13.5,
	"x-large":   18,
	"xx-large":  24,
	"xxx-large": 36,
	"smaller":   DefaultFontSizePt / 1.2,
	"larger":    DefaultFontSizePt * 1.2,
}

// fontSizeUnits converts a length to points as v * mul / div, keeping
// whole-number sizes exact.
var fontSizeUnits = []struct {
	suffix   string
	mul, div float64
}{
	{"rem", DefaultFontSizePt, 1},
	{"em", DefaultFontSizePt, 1},
	{"px", 3, 4},
	{"pt", 1, 1},
	{"%", DefaultFontSizePt, 100},
}

// ParseFontSize parses a CSS font-size value and returns it in points.
// Relative units resolve against the default 16px root size.
func ParseFontSize(value string) (float64, error) {
	raw := value
	value = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important")))

	if pt, ok := fontSizeKeywords[value]; ok {
		return pt, nil
	}

	for _, unit := range fontSizeUnits {
		number, ok := strings.CutSuffix(value, unit.suffix)
		if !ok {
			continue
		}
		v, ok := parseFinite(strings.TrimSpace(number))
		if !ok || v < 0 {
			return 0, &ParseError{Value: raw, Reason: "invalid font size"}
		}
		return v * unit.mul / unit.div, nil
	}

	if value == "0" {
		return 0, nil
	}
	return 0, &ParseError{Value: raw, Reason: "unsupported font size"}
}

// IsBold reports whether a CSS font-weight value renders bold (700 or more).
// Values that cannot be read count as normal weight.
func IsBold(weight string) bool {
	weight = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(weight), "!important")))
	switch weight {
	case "bold", "bolder":
		return true
	}
	v, ok := parseFinite(weight)
	return ok && v >= 700
}

// parseFinite parses a decimal number, rejecting NaN and infinities.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
