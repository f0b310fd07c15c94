package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// DecayFactor 指数衰减插值系数
//
// 公式：f = 1 - e^(-rate·dt)
//
// 与按帧固定比例插值不同，该系数只依赖真实经过的时间，
// 帧率变化时趋近速度不变。dt <= 0 时返回 0。
func DecayFactor(rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// Damp 以指数衰减方式让 current 趋近 target
func Damp(current, target, rate, dt float64) float64 {
	return Lerp(current, target, DecayFactor(rate, dt))
}

// DampVec3 Damp 的三维版本
func DampVec3(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	f := DecayFactor(rate, dt)
	return current.Add(target.Sub(current).Mul(f))
}
