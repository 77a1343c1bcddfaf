package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 配置文件中的曲线预设（preset）会通过 EasingByName 查找这些函数并采样成关键帧。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
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

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutQuad 二次方缓入缓出（镜头切换默认曲线）
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EasingByName 根据名称查找缓动函数
// 支持 "linear"、"easeInQuad"、"easeOutQuad"、"easeInOutQuad"、"easeInOutCubic"
func EasingByName(name string) (func(float64) float64, bool) {
	switch name {
	case "linear":
		return EaseLinear, true
	case "easeInQuad":
		return EaseInQuad, true
	case "easeOutQuad":
		return EaseOutQuad, true
	case "easeInOut", "easeInOutQuad":
		return EaseInOutQuad, true
	case "easeInOutCubic":
		return EaseInOutCubic, true
	default:
		return nil, false
	}
}

// Lerp 线性插值（t 被限制在 [0, 1]）
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return LerpUnclamped(a, b, Clamp01(t))
}

// LerpUnclamped 不限制 t 的线性插值
// 反向播放时插值参数可能短暂越界，此时需要外推而不是截断。
// t 为 0 或 1 时原样返回端点（包括 -0）
func LerpUnclamped(a, b, t float64) float64 {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// InverseLerp 返回 v 在 [a, b] 区间中的相对位置，结果限制在 [0, 1]
// a == b 时返回 0
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
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
