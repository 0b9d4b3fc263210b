package media

import (
	"net/http"
	"strconv"

	"github.com/anoixa/content-hub/api/common"
	"github.com/gin-gonic/gin"
)

// ListAssets 按展示顺序列出内容实体的资产
// GET /api/v1/:ownerType/:ownerID/assets
func (h *Handler) ListAssets(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	items, err := h.assetsRepo.WithContext(c.Request.Context()).ListByOwner(ownerType, ownerID)
	if err != nil {
		respondMediaError(c, err)
		return
	}

	views := make([]assetView, 0, len(items))
	for _, asset := range items {
		views = append(views, toAssetView(asset))
	}
	common.RespondSuccess(c, gin.H{"assets": views})
}

// DetachAsset 移除单个资产
// DELETE /api/v1/assets/:id
func (h *Handler) DetachAsset(c *gin.Context) {
	assetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset id")
		return
	}

	asset, err := h.assetsRepo.WithContext(c.Request.Context()).GetByID(uint(assetID))
	if err != nil {
		respondMediaError(c, err)
		return
	}

	if err := h.deleteService.Detach(c.Request.Context(), asset.ID); err != nil {
		respondMediaError(c, err)
		return
	}

	h.invalidateAssetCache(c, asset.StorageName)
	common.RespondSuccessMessage(c, "Asset removed", nil)
}

// SetPrimaryAsset 指定内容实体的主资产
// POST /api/v1/:ownerType/:ownerID/assets/:id/primary
func (h *Handler) SetPrimaryAsset(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}
	assetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset id")
		return
	}

	if err := h.assetsRepo.WithContext(c.Request.Context()).SetPrimary(ownerType, ownerID, uint(assetID)); err != nil {
		respondMediaError(c, err)
		return
	}
	common.RespondSuccessMessage(c, "Primary asset updated", nil)
}

type reorderRequestBody struct {
	OrderedIDs []uint `json:"ordered_ids" binding:"required"`
}

// ReorderAssets 重排内容实体的资产展示顺序
// POST /api/v1/:ownerType/:ownerID/assets/reorder
func (h *Handler) ReorderAssets(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	var req reorderRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.assetsRepo.WithContext(c.Request.Context()).Reorder(ownerType, ownerID, req.OrderedIDs); err != nil {
		respondMediaError(c, err)
		return
	}
	common.RespondSuccessMessage(c, "Assets reordered", nil)
}

// GetPrimaryAsset 获取内容实体的主资产
// GET /api/v1/:ownerType/:ownerID/assets/primary
func (h *Handler) GetPrimaryAsset(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	asset, err := h.assetsRepo.WithContext(c.Request.Context()).GetPrimary(ownerType, ownerID)
	if err != nil {
		respondMediaError(c, err)
		return
	}
	common.RespondSuccess(c, toAssetView(asset))
}
