package media

import (
	"net/http"
	"time"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/cache"
	"github.com/anoixa/content-hub/storage"
	"github.com/gin-gonic/gin"
)

// cachedAssetMeta 公开访问路径上缓存的资产元数据
type cachedAssetMeta struct {
	ID           uint   `json:"id"`
	DeclaredMime string `json:"declared_mime"`
	ByteSize     int64  `json:"byte_size"`
}

// GetAsset 公开访问已存储的文件
// GET /uploads/:name
// 名称在每次解析时重新校验，不信任任何缓存的路径
func (h *Handler) GetAsset(c *gin.Context) {
	storageName := c.Param("name")
	if !storage.IsValidStorageName(storageName) {
		common.RespondError(c, http.StatusBadRequest, "Invalid file name")
		return
	}

	meta, err := h.lookupAssetMeta(c, storageName)
	if err != nil {
		respondMediaError(c, err)
		return
	}

	provider := h.storage.GetDefault()
	reader, err := provider.GetWithContext(c.Request.Context(), storageName)
	if err != nil {
		respondMediaError(c, err)
		return
	}
	defer reader.Close()

	contentType := meta.DeclaredMime
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, meta.ByteSize, contentType, reader, nil)
}

// lookupAssetMeta 查询资产元数据，优先走缓存
func (h *Handler) lookupAssetMeta(c *gin.Context, storageName string) (*cachedAssetMeta, error) {
	key := cache.AssetKey(storageName)

	if h.cacheProvider != nil {
		var meta cachedAssetMeta
		if err := h.cacheProvider.Get(c.Request.Context(), key, &meta); err == nil {
			return &meta, nil
		}
	}

	asset, err := h.assetsRepo.WithContext(c.Request.Context()).GetByStorageName(storageName)
	if err != nil {
		return nil, err
	}

	meta := &cachedAssetMeta{
		ID:           asset.ID,
		DeclaredMime: asset.DeclaredMime,
		ByteSize:     asset.ByteSize,
	}
	if h.cacheProvider != nil {
		ttl := time.Duration(h.cacheTTL) * time.Second
		_ = h.cacheProvider.Set(c.Request.Context(), key, meta, ttl)
	}
	return meta, nil
}

// invalidateAssetCache 删除资产元数据缓存
func (h *Handler) invalidateAssetCache(c *gin.Context, storageName string) {
	if h.cacheProvider == nil {
		return
	}
	_ = h.cacheProvider.Delete(c.Request.Context(), cache.AssetKey(storageName))
}
