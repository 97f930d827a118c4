package systems

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/particles/internal/particle"
	"github.com/decker502/particles/pkg/utils"
)

// ParticleSample 是一个粒子实例在某一时刻的求值结果
type ParticleSample struct {
	Index    int
	Image    string
	Color    color.NRGBA
	Blend    particle.BlendMode
	X, Y     float64
	Opacity  float64
	Rotation float64 // 弧度
	Scale    float64
	Started  bool // 是否已过延迟
}

// ParticleFieldSystem 持有一次生成的粒子场，并按时间对其求值。
//
// 生成器本身不管理时间：每个实例只有起止状态和启动延迟。
// 本系统负责时钟（暂停、推进）以及把 progress 映射到插值：
//   - t < Delay：起始状态
//   - 之后 progress = ((t - Delay) mod Duration) / Duration，经预设曲线缓动后插值
//   - 无限循环，不自动反向
type ParticleFieldSystem struct {
	generator *particle.Generator
	config    particle.EmitterConfig
	canvas    particle.CanvasExtent
	instances []particle.Instance
	ease      utils.EasingFunc
	elapsed   float64
	paused    bool
	samples   []ParticleSample // 复用，避免每帧分配
}

// NewParticleFieldSystem 创建粒子场系统
func NewParticleFieldSystem(gen *particle.Generator) *ParticleFieldSystem {
	return &ParticleFieldSystem{
		generator: gen,
		ease:      utils.EaseLinear,
	}
}

// Reset 用新的配置和画布重新生成粒子场，时钟归零。
// 生成失败时保留之前的粒子场。
func (s *ParticleFieldSystem) Reset(config particle.EmitterConfig, canvas particle.CanvasExtent) error {
	instances, err := s.generator.Generate(config, canvas)
	if err != nil {
		return err
	}

	s.config = config
	s.canvas = canvas
	s.instances = instances
	s.ease = utils.EaseByName(string(config.Animation.Curve))
	s.elapsed = 0

	log.Printf("[ParticleFieldSystem] Generated %d %s particles on %.0fx%.0f canvas",
		len(instances), config.Name, canvas.Width, canvas.Height)
	return nil
}

// Regenerate 使用当前配置和画布重新生成
func (s *ParticleFieldSystem) Regenerate() error {
	return s.Reset(s.config, s.canvas)
}

// Resize 画布尺寸变化时重新生成；尺寸不变则什么都不做
func (s *ParticleFieldSystem) Resize(canvas particle.CanvasExtent) error {
	if canvas == s.canvas && s.instances != nil {
		return nil
	}
	return s.Reset(s.config, canvas)
}

// Update 推进时钟（暂停时不推进）
func (s *ParticleFieldSystem) Update(dt float64) {
	if s.paused || dt <= 0 {
		return
	}
	s.elapsed += dt
}

// SetPaused 设置暂停状态
func (s *ParticleFieldSystem) SetPaused(paused bool) {
	s.paused = paused
}

// Paused 返回是否暂停
func (s *ParticleFieldSystem) Paused() bool {
	return s.paused
}

// Elapsed 返回自上次生成以来经过的时间（秒）
func (s *ParticleFieldSystem) Elapsed() float64 {
	return s.elapsed
}

// Config 返回当前配置
func (s *ParticleFieldSystem) Config() particle.EmitterConfig {
	return s.config
}

// Canvas 返回当前画布
func (s *ParticleFieldSystem) Canvas() particle.CanvasExtent {
	return s.canvas
}

// Instances 返回当前生成的实例（只读）
func (s *ParticleFieldSystem) Instances() []particle.Instance {
	return s.instances
}

// Samples 在当前时间对所有实例求值。
// 返回的切片在下次调用前有效。
func (s *ParticleFieldSystem) Samples() []ParticleSample {
	s.samples = s.samples[:0]
	for _, inst := range s.instances {
		sample := sampleWith(inst, s.config.Animation, s.ease, s.elapsed)
		sample.Blend = s.config.BlendMode
		s.samples = append(s.samples, sample)
	}
	return s.samples
}

// SampleInstance 在时间 t（秒）对单个实例求值
func SampleInstance(inst particle.Instance, anim particle.Animation, t float64) ParticleSample {
	return sampleWith(inst, anim, utils.EaseByName(string(anim.Curve)), t)
}

// Progress 返回时间 t 处的线性进度 [0, 1) 以及是否已过延迟。
// duration <= 0 时直接返回终点。
func Progress(delay, duration, t float64) (float64, bool) {
	if t < delay {
		return 0, false
	}
	if duration <= 0 {
		return 1, true
	}
	return math.Mod(t-delay, duration) / duration, true
}

func sampleWith(inst particle.Instance, anim particle.Animation, ease utils.EasingFunc, t float64) ParticleSample {
	p, started := Progress(inst.Delay, anim.Duration, t)
	if started {
		p = ease(p)
	}

	return ParticleSample{
		Index:    inst.Index,
		Image:    inst.Image,
		Color:    inst.Color,
		X:        utils.Lerp(inst.Position.Start.X, inst.Position.End.X, p),
		Y:        utils.Lerp(inst.Position.Start.Y, inst.Position.End.Y, p),
		Opacity:  utils.Lerp(inst.Opacity.Start, inst.Opacity.End, p),
		Rotation: utils.Lerp(inst.Rotation.Start.Radians(), inst.Rotation.End.Radians(), p),
		Scale:    utils.Lerp(inst.Scale.Start, inst.Scale.End, p),
		Started:  started,
	}
}
