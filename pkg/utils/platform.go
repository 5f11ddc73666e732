//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端设置 GRIDBAG_MOBILE_EMULATE=1 可以模拟移动端（隐藏键盘提示）
func IsMobile() bool {
	return os.Getenv("GRIDBAG_MOBILE_EMULATE") == "1"
}
