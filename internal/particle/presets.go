package particle

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Mode selects one of the built-in presets.
type Mode int

const (
	ModeConfetti Mode = iota
	ModeExplosion
	ModeFireflies
	ModeMagic
	ModeRain
	ModeSmoke
	ModeSnow

	modeCount
)

var modeNames = [...]string{
	ModeConfetti:  "Confetti",
	ModeExplosion: "Explosion",
	ModeFireflies: "Fireflies",
	ModeMagic:     "Magic",
	ModeRain:      "Rain",
	ModeSmoke:     "Smoke",
	ModeSnow:      "Snow",
}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes lists all built-in modes in selector order.
func Modes() []Mode {
	modes := make([]Mode, 0, modeCount)
	for m := Mode(0); m < modeCount; m++ {
		modes = append(modes, m)
	}
	return modes
}

// ParseMode resolves a mode by name (case-insensitive).
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown particle mode %q", name)
}

// 预设颜色（与 data/presets.yaml 中的颜色名一致）
var (
	colorRed    = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	colorYellow = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	colorBlue   = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	colorGreen  = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	colorWhite  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorOrange = color.NRGBA{R: 255, G: 165, B: 0, A: 255}
	colorPurple = color.NRGBA{R: 128, G: 0, B: 128, A: 255}
	colorGray   = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	colorBlack  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colorClear  = color.NRGBA{}
)

// Preset returns the literal configuration of a built-in mode.
// Unknown modes fall back to Confetti.
func Preset(mode Mode) EmitterConfig {
	c := DefaultEmitterConfig()
	c.Name = mode.String()

	switch mode {
	case ModeExplosion:
		c.Images = []string{"spark"}
		c.Count = 500
		c.Colors = []color.NRGBA{colorRed}
		c.BlendMode = BlendScreen
		c.AngleRange = Degrees(360)
		c.OpacitySpeed = -1
		c.Scale, c.ScaleRange, c.ScaleSpeed = 0.4, 0.1, 0.3
		c.Speed, c.SpeedRange = 60, 80
		c.Animation = Animation{Curve: CurveEaseOut, Duration: 1}

	case ModeFireflies:
		c.Images = []string{"spark"}
		c.Count = 100
		c.CreationRange = Size{Width: 1, Height: 1}
		c.Colors = []color.NRGBA{colorYellow}
		c.BlendMode = BlendScreen
		c.AngleRange = Degrees(360)
		c.OpacitySpeed = -1
		c.Scale, c.ScaleRange, c.ScaleSpeed = 0.5, 0.2, -0.2
		c.Speed, c.SpeedRange = 120, 120
		c.Animation = Animation{Curve: CurveEaseInOut, Duration: 1}
		c.AnimationDelayThreshold = 1

	case ModeMagic:
		c.Images = []string{"spark"}
		c.Count = 200
		c.Colors = []color.NRGBA{{R: 128, G: 255, B: 255, A: 255}}
		c.BlendMode = BlendScreen
		c.AngleRange = Degrees(360)
		c.OpacitySpeed = -1
		c.Scale, c.ScaleRange, c.ScaleSpeed = 0.5, 0.2, -0.2
		c.Speed, c.SpeedRange = 120, 120
		c.Animation = Animation{Curve: CurveEaseOut, Duration: 1}
		c.AnimationDelayThreshold = 1

	case ModeRain:
		c.Images = []string{"line"}
		c.Count = 100
		c.CreationPoint = Point{X: 0.5, Y: -0.1}
		c.CreationRange = Size{Width: 1}
		c.Colors = []color.NRGBA{{R: 204, G: 204, B: 255, A: 255}}
		c.Angle = Degrees(180)
		c.OpacityRange = 1
		c.Scale = 0.6
		c.Speed, c.SpeedRange = 1000, 400
		c.Animation = Animation{Curve: CurveLinear, Duration: 1}
		c.AnimationDelayThreshold = 1

	case ModeSmoke:
		c.Images = []string{"spark"}
		c.Count = 200
		c.Colors = []color.NRGBA{colorGray}
		c.BlendMode = BlendScreen
		c.AngleRange = Degrees(90)
		c.OpacitySpeed = -1
		c.Scale, c.ScaleRange, c.ScaleSpeed = 0.3, 0.1, 1
		c.Speed, c.SpeedRange = 100, 80
		c.Animation = Animation{Curve: CurveLinear, Duration: 3}
		c.AnimationDelayThreshold = 3

	case ModeSnow:
		c.Images = []string{"spark"}
		c.Count = 100
		c.CreationPoint = Point{X: 0.5, Y: -0.1}
		c.CreationRange = Size{Width: 1}
		c.Colors = []color.NRGBA{colorWhite}
		c.Angle = Degrees(180)
		c.AngleRange = Degrees(10)
		c.OpacityRange = 1
		c.Scale, c.ScaleRange = 0.4, 0.4
		c.Speed, c.SpeedRange = 2000, 1500
		c.Animation = Animation{Curve: CurveLinear, Duration: 10}
		c.AnimationDelayThreshold = 10

	default:
		c.Name = ModeConfetti.String()
		c.Images = []string{"confetti"}
		c.Count = 50
		c.CreationPoint = Point{X: 0.5, Y: -0.1}
		c.CreationRange = Size{Width: 1}
		c.Colors = []color.NRGBA{colorRed, colorYellow, colorBlue, colorGreen, colorWhite, colorOrange, colorPurple}
		c.Angle = Degrees(180)
		c.AngleRange = Angle(math.Pi / 4)
		c.RotationRange = Angle(math.Pi * 2)
		c.RotationSpeed = Angle(math.Pi)
		c.Scale = 0.6
		c.Speed, c.SpeedRange = 1200, 800
		c.Animation = Animation{Curve: CurveLinear, Duration: 5}
		c.AnimationDelayThreshold = 5
	}
	return c
}

// BuiltinPresets returns every built-in preset in selector order.
func BuiltinPresets() []EmitterConfig {
	presets := make([]EmitterConfig, 0, modeCount)
	for _, m := range Modes() {
		presets = append(presets, Preset(m))
	}
	return presets
}
