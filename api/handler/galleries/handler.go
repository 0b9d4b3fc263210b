package galleries

import (
	"net/http"
	"strconv"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/galleries"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	"github.com/gin-gonic/gin"
)

// Handler 图库处理器
type Handler struct {
	repo          *galleries.Repository
	deleteService *mediaSvc.DeleteService
}

// NewHandler 创建图库处理器
func NewHandler(repo *galleries.Repository, deleteService *mediaSvc.DeleteService) *Handler {
	return &Handler{repo: repo, deleteService: deleteService}
}

type galleryRequestBody struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// ListGalleries 分页获取图库列表
// GET /api/v1/galleries
func (h *Handler) ListGalleries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.repo.WithContext(c.Request.Context()).List(page, pageSize, false)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list galleries")
		return
	}
	common.RespondSuccess(c, gin.H{"galleries": items, "total": total})
}

// GetGallery 获取单个图库
// GET /api/v1/galleries/:id
func (h *Handler) GetGallery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid gallery id")
		return
	}

	gallery, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Gallery not found")
		return
	}
	common.RespondSuccess(c, gallery)
}

// CreateGallery 创建图库
// POST /api/v1/galleries
func (h *Handler) CreateGallery(c *gin.Context) {
	var req galleryRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	gallery := &models.Gallery{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	}
	if err := h.repo.WithContext(c.Request.Context()).Create(gallery); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create gallery")
		return
	}
	common.RespondSuccessMessage(c, "Gallery created", gallery)
}

// UpdateGallery 更新图库
// PUT /api/v1/galleries/:id
func (h *Handler) UpdateGallery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid gallery id")
		return
	}

	var req galleryRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	gallery, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Gallery not found")
		return
	}

	gallery.Title = req.Title
	gallery.Description = req.Description
	gallery.Published = req.Published
	if err := h.repo.WithContext(c.Request.Context()).Update(gallery); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update gallery")
		return
	}
	common.RespondSuccessMessage(c, "Gallery updated", gallery)
}

// DeleteGallery 删除图库并级联移除其全部资产
// DELETE /api/v1/galleries/:id
func (h *Handler) DeleteGallery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid gallery id")
		return
	}

	if _, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id)); err != nil {
		common.RespondError(c, http.StatusNotFound, "Gallery not found")
		return
	}

	if err := h.deleteService.DetachOwner(c.Request.Context(), models.OwnerTypeGallery, uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to remove gallery assets")
		return
	}
	if err := h.repo.WithContext(c.Request.Context()).Delete(uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete gallery")
		return
	}
	common.RespondSuccessMessage(c, "Gallery deleted", nil)
}
