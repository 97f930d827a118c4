package particle

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Generator turns an EmitterConfig into per-particle start/end states.
//
// The only state is the random source, passed in explicitly so that a seeded
// source reproduces the same field. A Generator is not safe for concurrent
// use; create one per goroutine.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator creates a deterministic generator for the given seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate produces exactly config.Count instances for the canvas.
//
// An empty image set with a non-zero count fails with *ConfigurationError
// before any instance is produced. A non-positive count yields an empty
// slice regardless of images.
func (g *Generator) Generate(config EmitterConfig, canvas CanvasExtent) ([]Instance, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Count <= 0 {
		return []Instance{}, nil
	}

	instances := make([]Instance, 0, config.Count)
	for i := 0; i < config.Count; i++ {
		inst, err := g.GenerateInstance(config, canvas, i)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// GenerateInstance builds the particle at index. Draw order: image, position,
// opacity, rotation, scale, delay, color.
func (g *Generator) GenerateInstance(config EmitterConfig, canvas CanvasExtent, index int) (Instance, error) {
	if len(config.Images) == 0 {
		return Instance{}, &ConfigurationError{Emitter: config.Name, Field: "images", Reason: ErrNoImages}
	}
	image := config.Images[pick(g.rng, len(config.Images))]

	inst := Instance{
		Index:    index,
		Image:    image,
		Position: g.GeneratePosition(config, canvas),
		Opacity:  g.GenerateOpacity(config),
		Rotation: g.GenerateRotation(config),
		Scale:    g.GenerateScale(config),
		Delay:    g.AssignAnimationDelay(config),
	}
	inst.Color = g.pickColor(config)
	return inst, nil
}

// GeneratePosition computes where a particle starts and where it ends after
// one animation cycle.
//
// Creation offset, speed and direction are drawn independently. Angle 0
// points up (screen y grows downward), so the heading is rotated by -π/2
// before taking cos/sin.
func (g *Generator) GeneratePosition(config EmitterConfig, canvas CanvasExtent) Range[Point] {
	offsetX := Jitter(g.rng, config.CreationRange.Width)
	offsetY := Jitter(g.rng, config.CreationRange.Height)

	start := Point{
		X: canvas.Width * (config.CreationPoint.X + offsetX),
		Y: canvas.Height * (config.CreationPoint.Y + offsetY),
	}

	actualSpeed := config.Speed + Jitter(g.rng, config.SpeedRange)
	actualDirection := config.Angle.Radians() + Jitter(g.rng, config.AngleRange.Radians())

	dx := math.Cos(actualDirection-math.Pi/2) * actualSpeed
	dy := math.Sin(actualDirection-math.Pi/2) * actualSpeed

	return Range[Point]{
		Start: start,
		End:   Point{X: start.X + dx, Y: start.Y + dy},
	}
}

// GenerateOpacity reuses one jitter sample for both ends, so the spread is a
// constant offset along the particle's path. Values are not clamped.
func (g *Generator) GenerateOpacity(config EmitterConfig) Range[float64] {
	jitter := Jitter(g.rng, config.OpacityRange)
	return Range[float64]{
		Start: config.Opacity + jitter,
		End:   config.Opacity + config.OpacitySpeed + jitter,
	}
}

// GenerateScale follows the same shared-jitter pattern as GenerateOpacity.
// Negative scales pass through.
func (g *Generator) GenerateScale(config EmitterConfig) Range[float64] {
	jitter := Jitter(g.rng, config.ScaleRange)
	return Range[float64]{
		Start: config.Scale + jitter,
		End:   config.Scale + config.ScaleSpeed + jitter,
	}
}

// GenerateRotation follows the same shared-jitter pattern in radians.
// Values may exceed one full turn.
func (g *Generator) GenerateRotation(config EmitterConfig) Range[Angle] {
	jitter := Angle(Jitter(g.rng, config.RotationRange.Radians()))
	return Range[Angle]{
		Start: config.Rotation + jitter,
		End:   config.Rotation + config.RotationSpeed + jitter,
	}
}

// AssignImageAndColor picks the particle's image and tint.
func (g *Generator) AssignImageAndColor(config EmitterConfig) (string, color.NRGBA, error) {
	if len(config.Images) == 0 {
		return "", color.NRGBA{}, &ConfigurationError{Emitter: config.Name, Field: "images", Reason: ErrNoImages}
	}
	image := config.Images[pick(g.rng, len(config.Images))]
	return image, g.pickColor(config), nil
}

// AssignAnimationDelay draws the per-particle start delay in
// [0, AnimationDelayThreshold]. A zero threshold always yields 0.
func (g *Generator) AssignAnimationDelay(config EmitterConfig) float64 {
	return RandomInRange(g.rng, 0, math.Abs(config.AnimationDelayThreshold))
}

func (g *Generator) pickColor(config EmitterConfig) color.NRGBA {
	if len(config.Colors) == 0 {
		return DefaultColor
	}
	return config.Colors[pick(g.rng, len(config.Colors))]
}
