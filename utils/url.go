package utils

import (
	"fmt"

	"github.com/anoixa/content-hub/config"
)

// BuildPublicLink 生成资产的公开访问链接
func BuildPublicLink(storageName string) string {
	cfg := config.Get()
	return fmt.Sprintf("%s/uploads/%s", cfg.BaseURL(), storageName)
}
