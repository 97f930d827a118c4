package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/particles/internal/particle"
)

const epsilon = 1e-9

func testInstance() particle.Instance {
	return particle.Instance{
		Index: 3,
		Image: "spark",
		Color: particle.DefaultColor,
		Delay: 0.5,
		Position: particle.Range[particle.Point]{
			Start: particle.Point{X: 0, Y: 0},
			End:   particle.Point{X: 100, Y: 200},
		},
		Opacity:  particle.Range[float64]{Start: 1, End: 0},
		Rotation: particle.Range[particle.Angle]{Start: 0, End: math.Pi},
		Scale:    particle.Range[float64]{Start: 1, End: 3},
	}
}

// TestProgress 测试延迟与循环进度
func TestProgress(t *testing.T) {
	tests := []struct {
		name        string
		delay       float64
		duration    float64
		t           float64
		wantP       float64
		wantStarted bool
	}{
		{"延迟之前", 1, 2, 0.5, 0, false},
		{"恰好开始", 1, 2, 1, 0, true},
		{"中点", 1, 2, 2, 0.5, true},
		{"第二轮", 1, 2, 3.5, 0.25, true},
		{"零时长显示终点", 0, 0, 0.1, 1, true},
		{"负时长显示终点", 0, -1, 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, started := Progress(tt.delay, tt.duration, tt.t)
			if math.Abs(p-tt.wantP) > epsilon || started != tt.wantStarted {
				t.Errorf("Progress(%v, %v, %v) = (%v, %v), want (%v, %v)",
					tt.delay, tt.duration, tt.t, p, started, tt.wantP, tt.wantStarted)
			}
		})
	}
}

// TestSampleInstance 测试单实例求值
func TestSampleInstance(t *testing.T) {
	inst := testInstance()
	anim := particle.Animation{Curve: particle.CurveLinear, Duration: 2}

	// 延迟前保持起始状态
	before := SampleInstance(inst, anim, 0.25)
	if before.Started || before.X != 0 || before.Y != 0 || before.Opacity != 1 || before.Scale != 1 {
		t.Errorf("Before delay should be start state, got %+v", before)
	}

	// 延迟 + 半个周期 = 中点
	mid := SampleInstance(inst, anim, 1.5)
	if !mid.Started {
		t.Error("Sample should be started after delay")
	}
	if math.Abs(mid.X-50) > epsilon || math.Abs(mid.Y-100) > epsilon {
		t.Errorf("Midpoint position = (%v, %v), want (50, 100)", mid.X, mid.Y)
	}
	if math.Abs(mid.Opacity-0.5) > epsilon || math.Abs(mid.Scale-2) > epsilon {
		t.Errorf("Midpoint opacity/scale = %v/%v, want 0.5/2", mid.Opacity, mid.Scale)
	}
	if math.Abs(mid.Rotation-math.Pi/2) > epsilon {
		t.Errorf("Midpoint rotation = %v, want π/2", mid.Rotation)
	}

	// 循环：一个完整周期后回到起点
	again := SampleInstance(inst, anim, 2.5)
	if math.Abs(again.X) > epsilon || math.Abs(again.Opacity-1) > epsilon {
		t.Errorf("Next cycle should restart, got %+v", again)
	}

	if mid.Index != 3 || mid.Image != "spark" || mid.Color != particle.DefaultColor {
		t.Errorf("Identity fields not carried: %+v", mid)
	}
}

// TestSampleInstance_Easing 测试缓动曲线
func TestSampleInstance_Easing(t *testing.T) {
	inst := testInstance()
	inst.Delay = 0

	linear := SampleInstance(inst, particle.Animation{Curve: particle.CurveLinear, Duration: 1}, 0.25)
	easeIn := SampleInstance(inst, particle.Animation{Curve: particle.CurveEaseIn, Duration: 1}, 0.25)
	easeOut := SampleInstance(inst, particle.Animation{Curve: particle.CurveEaseOut, Duration: 1}, 0.25)

	if !(easeIn.X < linear.X && linear.X < easeOut.X) {
		t.Errorf("Expected easeIn < linear < easeOut at t=0.25, got %v, %v, %v", easeIn.X, linear.X, easeOut.X)
	}
}

// TestParticleFieldSystem_Lifecycle 测试生成、推进、暂停
func TestParticleFieldSystem_Lifecycle(t *testing.T) {
	s := NewParticleFieldSystem(particle.NewSeededGenerator(42))
	canvas := particle.CanvasExtent{Width: 400, Height: 300}

	if err := s.Reset(particle.Preset(particle.ModeSnow), canvas); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(s.Instances()) != 100 {
		t.Fatalf("Expected 100 snow instances, got %d", len(s.Instances()))
	}

	s.Update(0.5)
	s.Update(0.25)
	if math.Abs(s.Elapsed()-0.75) > epsilon {
		t.Errorf("Elapsed = %v, want 0.75", s.Elapsed())
	}

	s.SetPaused(true)
	s.Update(1)
	if !s.Paused() || math.Abs(s.Elapsed()-0.75) > epsilon {
		t.Errorf("Paused system should not advance, elapsed = %v", s.Elapsed())
	}
	s.SetPaused(false)

	samples := s.Samples()
	if len(samples) != 100 {
		t.Fatalf("Expected 100 samples, got %d", len(samples))
	}
	for i, sample := range samples {
		want := SampleInstance(s.Instances()[i], s.Config().Animation, s.Elapsed())
		want.Blend = s.Config().BlendMode
		if sample != want {
			t.Fatalf("Sample %d = %+v, want %+v", i, sample, want)
		}
	}

	// Regenerate 清零时钟
	if err := s.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if s.Elapsed() != 0 {
		t.Errorf("Regenerate should reset the clock, got %v", s.Elapsed())
	}
}

// TestParticleFieldSystem_Resize 测试画布变化
func TestParticleFieldSystem_Resize(t *testing.T) {
	s := NewParticleFieldSystem(particle.NewSeededGenerator(7))
	if err := s.Reset(particle.Preset(particle.ModeRain), particle.CanvasExtent{Width: 300, Height: 300}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	s.Update(1)

	// 尺寸不变不重新生成
	if err := s.Resize(particle.CanvasExtent{Width: 300, Height: 300}); err != nil {
		t.Fatal(err)
	}
	if s.Elapsed() != 1 {
		t.Error("Same-size resize should keep the field")
	}

	if err := s.Resize(particle.CanvasExtent{Width: 600, Height: 300}); err != nil {
		t.Fatal(err)
	}
	if s.Canvas().Width != 600 || s.Elapsed() != 0 {
		t.Errorf("Resize should regenerate, canvas=%v elapsed=%v", s.Canvas(), s.Elapsed())
	}
	for _, inst := range s.Instances() {
		if inst.Position.Start.X < 0 || inst.Position.Start.X > 600 {
			t.Fatalf("Rain start x %v outside new canvas", inst.Position.Start.X)
		}
	}
}

// TestParticleFieldSystem_ResetError 测试生成失败时保留旧粒子场
func TestParticleFieldSystem_ResetError(t *testing.T) {
	s := NewParticleFieldSystem(particle.NewSeededGenerator(1))
	canvas := particle.CanvasExtent{Width: 100, Height: 100}
	if err := s.Reset(particle.Preset(particle.ModeMagic), canvas); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	bad := particle.Preset(particle.ModeMagic)
	bad.Images = nil
	err := s.Reset(bad, canvas)
	if !errors.Is(err, particle.ErrNoImages) {
		t.Fatalf("Expected ErrNoImages, got %v", err)
	}
	if len(s.Instances()) != 200 || len(s.Config().Images) == 0 {
		t.Error("Failed reset should keep the previous field")
	}
}

// TestSampleInstance_QuadCurve 测试预设文件可选的二次曲线
func TestSampleInstance_QuadCurve(t *testing.T) {
	inst := testInstance()
	inst.Delay = 0

	s := SampleInstance(inst, particle.Animation{Curve: particle.CurveEaseInQuad, Duration: 1}, 0.5)
	// 0.5² = 0.25 → x = 25
	if math.Abs(s.X-25) > epsilon {
		t.Errorf("easeInQuad x at t=0.5 = %v, want 25", s.X)
	}
}
