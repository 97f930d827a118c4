// Package particle generates randomized per-particle start/end states for
// decorative particle effects (confetti, explosion, fireflies, magic, rain,
// smoke, snow).
//
// The package only produces data: every Instance carries (start, end) pairs
// that an external animator interpolates between. Timing, easing and drawing
// belong to the consumer (see pkg/systems).
package particle

import (
	"image/color"
	"math"
)

// Point is a 2D point. For EmitterConfig.CreationPoint the components are
// fractions of the canvas width/height; for generated positions they are pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Size is a 2D extent expressed as fractions of the canvas.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CanvasExtent is the pixel size of the rendering surface at generation time.
type CanvasExtent struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Angle is an angle in radians.
type Angle float64

// Degrees builds an Angle from degrees.
func Degrees(d float64) Angle {
	return Angle(d * math.Pi / 180)
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return float64(a)
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 180 / math.Pi
}

// BlendMode 粒子与背景的混合方式
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendScreen
	BlendAdditive
	BlendMultiply
)

func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendScreen:
		return "screen"
	case BlendAdditive:
		return "additive"
	case BlendMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// Curve names the easing curve an animator applies between start and end.
type Curve string

const (
	CurveLinear    Curve = "linear"
	CurveEaseIn    Curve = "easeIn"
	CurveEaseOut   Curve = "easeOut"
	CurveEaseInOut Curve = "easeInOut"

	CurveEaseInQuad     Curve = "easeInQuad"
	CurveEaseOutQuad    Curve = "easeOutQuad"
	CurveEaseOutCubic   Curve = "easeOutCubic"
	CurveEaseInOutCubic Curve = "easeInOutCubic"
)

// Animation describes how the consumer should interpolate a field.
// Every cycle repeats forever without autoreverse.
type Animation struct {
	Curve    Curve   // Easing curve
	Duration float64 // Cycle length in seconds
}

// DefaultColor is used when EmitterConfig.Colors is empty.
var DefaultColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// EmitterConfig is the immutable configuration of one emission session.
//
// Ranges are full widths centered on their base value: AngleRange = π/2
// spreads directions over [Angle-π/4, Angle+π/4].
type EmitterConfig struct {
	Name string

	// Images 每个粒子从中均匀随机选一个
	Images []string
	Count  int

	// Creation area (fractions of the canvas)
	CreationPoint Point
	CreationRange Size

	// Colors 每个粒子从中均匀随机选一个；为空时使用 DefaultColor
	Colors    []color.NRGBA
	BlendMode BlendMode

	// Direction (0 points up, clockwise positive)
	Angle      Angle
	AngleRange Angle

	Opacity      float64
	OpacityRange float64
	OpacitySpeed float64 // Total change over one animation cycle

	Rotation      Angle
	RotationRange Angle
	RotationSpeed Angle

	Scale      float64
	ScaleRange float64
	ScaleSpeed float64

	// Speed is the travel distance in pixels per animation cycle.
	Speed      float64
	SpeedRange float64

	Animation               Animation
	AnimationDelayThreshold float64 // Max random start delay (seconds)
}

// DefaultEmitterConfig returns the baseline emitter: centered creation point,
// white, fully opaque, unit scale, 50px per cycle on a linear 1s animation.
// Presets override what they need on top of it.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		CreationPoint: Point{X: 0.5, Y: 0.5},
		Colors:        []color.NRGBA{DefaultColor},
		BlendMode:     BlendNormal,
		Opacity:       1,
		Scale:         1,
		Speed:         50,
		Animation:     Animation{Curve: CurveLinear, Duration: 1},
	}
}

// Range is a generated (start, end) pair for one attribute of one particle.
type Range[T any] struct {
	Start T `yaml:"start"`
	End   T `yaml:"end"`
}

// Instance is one generated particle. It is handed to the animator and never
// touched by this package again.
type Instance struct {
	Index    int            `yaml:"index"`
	Image    string         `yaml:"image"`
	Color    color.NRGBA    `yaml:"-"`
	Delay    float64        `yaml:"delay"`
	Position Range[Point]   `yaml:"position"`
	Opacity  Range[float64] `yaml:"opacity"`
	Rotation Range[Angle]   `yaml:"rotation"`
	Scale    Range[float64] `yaml:"scale"`
}
