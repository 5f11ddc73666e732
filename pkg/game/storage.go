package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/gridbag/pkg/utils"
)

// OpenStorage 打开跨平台的持久化存储
// 失败时返回 nil，调用方进入降级模式（设置只保存在内存里）
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Storage] Warning: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: failed to open gdata storage for %s: %v (settings will not persist)", appName, err)
		return nil
	}
	log.Printf("[Storage] Opened gdata storage for %s", appName)
	return manager
}
