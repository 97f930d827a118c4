package particle

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseAngle parses an angle string from a preset file.
// Supported formats:
//   - Degrees: "180deg", "180°"
//   - Radians: "1.2rad", "0.785" (bare numbers are radians)
//   - Multiples of π: "pi", "2pi", "-0.5pi", "pi/4", "π/2"
func ParseAngle(s string) (Angle, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	switch {
	case strings.HasSuffix(s, "deg"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "deg")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid angle %q: %w", raw, err)
		}
		return Degrees(v), nil

	case strings.HasSuffix(s, "°"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "°")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid angle %q: %w", raw, err)
		}
		return Degrees(v), nil

	case strings.HasSuffix(s, "rad"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "rad")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid angle %q: %w", raw, err)
		}
		return Angle(v), nil
	}

	s = strings.ReplaceAll(s, "π", "pi")
	if idx := strings.Index(s, "pi"); idx >= 0 {
		coef := 1.0
		switch head := strings.TrimSpace(s[:idx]); head {
		case "", "+":
		case "-":
			coef = -1
		default:
			v, err := strconv.ParseFloat(strings.TrimSuffix(head, "*"), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid angle %q: %w", raw, err)
			}
			coef = v
		}

		div := 1.0
		if tail := strings.TrimSpace(s[idx+2:]); tail != "" {
			if !strings.HasPrefix(tail, "/") {
				return 0, fmt.Errorf("invalid angle %q: unexpected %q after pi", raw, tail)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(tail[1:]), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid angle %q: %w", raw, err)
			}
			if v == 0 {
				return 0, fmt.Errorf("invalid angle %q: division by zero", raw)
			}
			div = v
		}
		// 保持与 math.Pi*2、math.Pi/4 相同的运算顺序，避免浮点误差
		if div == 1 {
			return Angle(math.Pi * coef), nil
		}
		return Angle(math.Pi * coef / div), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid angle %q: %w", raw, err)
	}
	return Angle(v), nil
}

var namedColors = map[string]color.NRGBA{
	"red":    colorRed,
	"yellow": colorYellow,
	"blue":   colorBlue,
	"green":  colorGreen,
	"white":  colorWhite,
	"orange": colorOrange,
	"purple": colorPurple,
	"gray":   colorGray,
	"grey":   colorGray,
	"black":  colorBlack,
	"clear":  colorClear,
}

// ParseColor parses a named color ("red"), a hex color ("#80ffff") or an
// rgb triple with 0-1 components ("rgb(0.5, 1, 1)").
func ParseColor(s string) (color.NRGBA, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", raw, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"), ",")
		if len(parts) != 3 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 3 components", raw)
		}
		var comps [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", raw, err)
			}
			comps[i] = v
		}
		c := colorful.Color{R: comps[0], G: comps[1], B: comps[2]}.Clamped()
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}

	return color.NRGBA{}, fmt.Errorf("unknown color %q", raw)
}

// FormatColor renders a color as "#rrggbb".
func FormatColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ParseBlendMode parses a blend mode name.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return BlendNormal, nil
	case "screen":
		return BlendScreen, nil
	case "additive", "lighter", "add":
		return BlendAdditive, nil
	case "multiply":
		return BlendMultiply, nil
	default:
		return BlendNormal, fmt.Errorf("unknown blend mode %q", s)
	}
}

// ParseCurve parses an easing curve name.
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return CurveLinear, nil
	case "easein":
		return CurveEaseIn, nil
	case "easeout":
		return CurveEaseOut, nil
	case "easeinout":
		return CurveEaseInOut, nil
	case "easeinquad":
		return CurveEaseInQuad, nil
	case "easeoutquad":
		return CurveEaseOutQuad, nil
	case "easeoutcubic":
		return CurveEaseOutCubic, nil
	case "easeinoutcubic":
		return CurveEaseInOutCubic, nil
	default:
		return CurveLinear, fmt.Errorf("unknown animation curve %q", s)
	}
}
