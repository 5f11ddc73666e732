package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustParseHexColor 解析颜色，失败时返回不透明的品红色以便在画面上一眼看出
func MustParseHexColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	return c
}
