package utils

import (
	"math"
	"strings"
)

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 粒子预设的 easeIn/easeOut/easeInOut 使用与 CSS 相同的三次贝塞尔控制点。
//
// 参考：https://easings.net/ , https://www.w3.org/TR/css-easing-1/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// CubicBezier 返回以 (0,0)、(x1,y1)、(x2,y2)、(1,1) 为控制点的时间曲线。
// x1、x2 必须位于 [0, 1]。
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	// 多项式系数: B(s) = ((a*s + b)*s + c)*s
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	return func(t float64) float64 {
		t = Clamp01(t)
		if t == 0 || t == 1 {
			return t
		}

		// 牛顿迭代求 s 使 x(s) = t
		s := t
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - t
			if math.Abs(dx) < 1e-7 {
				return sampleY(s)
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		// 二分兜底
		lo, hi := 0.0, 1.0
		s = t
		for i := 0; i < 32; i++ {
			x := sampleX(s)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return sampleY(s)
	}
}

var (
	// EaseIn CSS ease-in
	EaseIn = CubicBezier(0.42, 0, 1, 1)
	// EaseOut CSS ease-out
	EaseOut = CubicBezier(0, 0, 0.58, 1)
	// EaseInOut CSS ease-in-out
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

// EaseByName 根据曲线名称返回缓动函数，未知名称回退为线性
func EaseByName(name string) EasingFunc {
	switch strings.ToLower(name) {
	case "easein":
		return EaseIn
	case "easeout":
		return EaseOut
	case "easeinout":
		return EaseInOut
	case "easeinquad":
		return EaseInQuad
	case "easeoutquad":
		return EaseOutQuad
	case "easeoutcubic":
		return EaseOutCubic
	case "easeinoutcubic":
		return EaseInOutCubic
	default:
		return EaseLinear
	}
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
