package color

import "strings"

// ParseBackground extracts a solid color from a background or
// background-color value. ok is false when the value has no color or
// paints an image or gradient, since no single ratio applies then.
func ParseBackground(value string) (Color, bool, error) {
	lower := strings.ToLower(value)
	if strings.Contains(lower, "url(") || strings.Contains(lower, "gradient(") {
		return Color{}, false, nil
	}

	for _, token := range splitTopLevel(lower) {
		if !looksLikeColor(token) {
			continue
		}
		c, err := Parse(token)
		if err != nil {
			return Color{}, false, err
		}
		return c, true, nil
	}

	return Color{}, false, nil
}

// looksLikeColor reports whether token is plausibly a color rather than
// another background longhand such as a position or repeat keyword.
func looksLikeColor(token string) bool {
	if strings.HasPrefix(token, "#") || strings.HasPrefix(token, "rgb") || strings.HasPrefix(token, "hsl") {
		return true
	}
	if token == "transparent" {
		return true
	}
	_, named := namedColors[token]
	return named
}

// splitTopLevel splits on whitespace outside parentheses.
func splitTopLevel(value string) []string {
	var (
		tokens []string
		depth  int
		start  = -1
	)
	for i, r := range value {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth = max(0, depth-1)
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			if start >= 0 {
				tokens = append(tokens, value[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, value[start:])
	}
	return tokens
}
