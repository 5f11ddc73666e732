package utils

import (
	"math"
	"testing"
)

// TestEasingEndpoints 缓动函数在端点处精确取 0 和 1，并对越界输入取边界值
func TestEasingEndpoints(t *testing.T) {
	funcs := map[string]func(float64) float64{
		"EaseOutCubic": EaseOutCubic,
		"EaseInQuad":   EaseInQuad,
	}
	for name, f := range funcs {
		if got := f(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := f(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
		if got := f(-0.5); got != 0 {
			t.Errorf("%s(-0.5) = %v, want 0", name, got)
		}
		if got := f(2); got != 1 {
			t.Errorf("%s(2) = %v, want 1", name, got)
		}
	}

	// 缓出在中点已经走完大半
	if got := EaseOutCubic(0.5); math.Abs(got-0.875) > 1e-9 {
		t.Errorf("EaseOutCubic(0.5) = %v, want 0.875", got)
	}
	if got := EaseInQuad(0.5); got != 0.25 {
		t.Errorf("EaseInQuad(0.5) = %v, want 0.25", got)
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 100, 0, 0},
		{0, 100, 1, 100},
		{100, 50, 0.5, 75},
		{-10, 10, 0.25, -5},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}
