package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		if EaseLinear(v) != v {
			t.Errorf("EaseLinear(%v) = %v", v, EaseLinear(v))
		}
	}
}

// TestPolynomialEasing 测试多项式缓动
func TestPolynomialEasing(t *testing.T) {
	tests := []struct {
		name     string
		fn       EasingFunc
		input    float64
		expected float64
	}{
		{"EaseInQuad 中点", EaseInQuad, 0.5, 0.25},
		{"EaseOutQuad 中点", EaseOutQuad, 0.5, 0.75},
		{"EaseOutCubic 中点", EaseOutCubic, 0.5, 0.875},
		{"EaseInOutCubic 中点", EaseInOutCubic, 0.5, 0.5},
		{"EaseInOutCubic 四分之一", EaseInOutCubic, 0.25, 0.0625},
		{"EaseOutCubic 终点", EaseOutCubic, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("f(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestCubicBezier 测试三次贝塞尔缓动
func TestCubicBezier(t *testing.T) {
	t.Run("端点", func(t *testing.T) {
		for _, fn := range []EasingFunc{EaseIn, EaseOut, EaseInOut} {
			if fn(0) != 0 || fn(1) != 1 {
				t.Errorf("endpoints = %v, %v", fn(0), fn(1))
			}
			if fn(-1) != 0 || fn(2) != 1 {
				t.Errorf("out-of-range input should clamp, got %v, %v", fn(-1), fn(2))
			}
		}
	})

	t.Run("线性控制点", func(t *testing.T) {
		linear := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
		for p := 0.05; p < 1; p += 0.1 {
			if math.Abs(linear(p)-p) > 1e-5 {
				t.Errorf("linear bezier(%v) = %v", p, linear(p))
			}
		}
	})

	t.Run("对称", func(t *testing.T) {
		if math.Abs(EaseInOut(0.5)-0.5) > 1e-5 {
			t.Errorf("EaseInOut(0.5) = %v, 期望 0.5", EaseInOut(0.5))
		}
		for p := 0.1; p < 0.5; p += 0.1 {
			if math.Abs(EaseInOut(p)+EaseInOut(1-p)-1) > 1e-5 {
				t.Errorf("EaseInOut 不对称: f(%v)=%v f(%v)=%v", p, EaseInOut(p), 1-p, EaseInOut(1-p))
			}
		}
	})

	t.Run("开始快/开始慢", func(t *testing.T) {
		for p := 0.1; p < 0.9; p += 0.1 {
			if EaseOut(p) <= p {
				t.Errorf("EaseOut(%v) = %v 应该大于线性值", p, EaseOut(p))
			}
			if EaseIn(p) >= p {
				t.Errorf("EaseIn(%v) = %v 应该小于线性值", p, EaseIn(p))
			}
		}
	})

	t.Run("单调", func(t *testing.T) {
		prev := 0.0
		for p := 0.01; p <= 1; p += 0.01 {
			v := EaseOut(p)
			if v < prev-1e-9 {
				t.Fatalf("EaseOut not monotonic at %v: %v < %v", p, v, prev)
			}
			prev = v
		}
	})
}

// TestEaseByName 测试名称查找
func TestEaseByName(t *testing.T) {
	if EaseByName("easeOut")(0.3) != EaseOut(0.3) {
		t.Error("easeOut lookup mismatch")
	}
	if EaseByName("EASEINOUT")(0.3) != EaseInOut(0.3) {
		t.Error("easeInOut lookup should be case-insensitive")
	}
	if EaseByName("easeIn")(0.3) != EaseIn(0.3) {
		t.Error("easeIn lookup mismatch")
	}

	quadAndCubic := []struct {
		name string
		fn   EasingFunc
	}{
		{"easeInQuad", EaseInQuad},
		{"easeOutQuad", EaseOutQuad},
		{"easeOutCubic", EaseOutCubic},
		{"EaseInOutCubic", EaseInOutCubic},
	}
	for _, tt := range quadAndCubic {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range []float64{0.1, 0.3, 0.7} {
				if got, want := EaseByName(tt.name)(x), tt.fn(x); got != want {
					t.Errorf("EaseByName(%q)(%v) = %v, want %v", tt.name, x, got, want)
				}
			}
		})
	}

	if EaseByName("bounce")(0.3) != 0.3 {
		t.Error("unknown curve should fall back to linear")
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0, 100, 0, 0},
		{"中点", 0, 100, 0.5, 50},
		{"终点", 0, 100, 1, 100},
		{"负数范围", -50, 50, 0.5, 0},
		{"逆向范围", 100, 0, 0.5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Lerp(tt.a, tt.b, tt.t); math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestClamp01 测试范围限制
func TestClamp01(t *testing.T) {
	if Clamp01(-0.5) != 0 || Clamp01(0.5) != 0.5 || Clamp01(1.5) != 1 {
		t.Error("Clamp01 unexpected result")
	}
}
