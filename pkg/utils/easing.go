package utils

import "math"

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]

// EaseOutCubic 三次方缓出
// 开始快、结束慢，用于代理飞回源位置
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-Clamp01(t), 3)
}

// EaseInQuad 二次方缓入
// 开始慢、结束较快，用于代理淡出
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
