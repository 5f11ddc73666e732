//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 设置目录存在并可写
// gdata 在 Android 上使用 /data/data/{package}/ 但不会创建子目录，
// 必须在 gdata.Open 之前调用
func EnsureStorageDir() error {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}
	pkg := string(bytes.TrimRight(bytes.Trim(cmdline, "\x00\n"), "\x00"))
	if pkg == "" {
		return fmt.Errorf("got empty package name from /proc/self/cmdline")
	}

	dir := filepath.Join("/data/data", pkg, "settings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", dir, err)
	}
	return os.Remove(testFile)
}
