package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestStartReturnsSetupErrors 初始化失败时返回错误而不是直接退出进程
func TestStartReturnsSetupErrors(t *testing.T) {
	dir := t.TempDir()
	layout := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(layout, []byte("groups: [{name: default, columns: 2, rows: 2}]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	tests := []struct {
		name    string
		layout  string
		items   string
		wantErr string
	}{
		{"布局不存在", filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "items.yaml"), "failed to load layout"},
		{"物品目录不存在", layout, filepath.Join(dir, "missing.yaml"), "failed to load items"},
	}

	*mute = true
	*logPath = ""
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*layoutPath, *itemsPath = tt.layout, tt.items
			err := start()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
