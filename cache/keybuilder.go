package cache

import "fmt"

// AssetKey 公开访问路径上的资产元数据缓存键
func AssetKey(storageName string) string {
	return fmt.Sprintf("asset:name:%s", storageName)
}

// PageKey 静态页面缓存键
func PageKey(slug string) string {
	return fmt.Sprintf("page:slug:%s", slug)
}
