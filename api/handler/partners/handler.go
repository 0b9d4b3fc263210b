package partners

import (
	"net/http"
	"strconv"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/database/models"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	partnersSvc "github.com/anoixa/content-hub/internal/services/partners"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler 合作伙伴处理器
// 所有写操作都经过 partners 服务，保证新旧两套项目关联一致
type Handler struct {
	service       *partnersSvc.Service
	deleteService *mediaSvc.DeleteService
}

// NewHandler 创建合作伙伴处理器
func NewHandler(service *partnersSvc.Service, deleteService *mediaSvc.DeleteService) *Handler {
	return &Handler{service: service, deleteService: deleteService}
}

type partnerRequestBody struct {
	Name            string `json:"name" binding:"required"`
	Website         string `json:"website"`
	LegacyProjectID *uint  `json:"legacy_project_id"`
	ProjectIDs      []uint `json:"project_ids"`
}

func (req *partnerRequestBody) apply(partner *models.Partner) {
	partner.Name = req.Name
	partner.Website = req.Website
	partner.LegacyProjectID = req.LegacyProjectID
	partner.LegacyProject = nil

	partner.Projects = make([]*models.Project, 0, len(req.ProjectIDs))
	for _, id := range req.ProjectIDs {
		partner.Projects = append(partner.Projects, &models.Project{Model: gorm.Model{ID: id}})
	}
}

// ListPartners 获取全部伙伴
// GET /api/v1/partners
func (h *Handler) ListPartners(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list partners")
		return
	}
	common.RespondSuccess(c, gin.H{"partners": items})
}

// GetPartner 获取伙伴及其两套项目关联
// GET /api/v1/partners/:id
func (h *Handler) GetPartner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid partner id")
		return
	}

	partner, err := h.service.Get(c.Request.Context(), uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Partner not found")
		return
	}
	common.RespondSuccess(c, partner)
}

// CreatePartner 创建伙伴
// POST /api/v1/partners
func (h *Handler) CreatePartner(c *gin.Context) {
	var req partnerRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	partner := &models.Partner{}
	req.apply(partner)

	if err := h.service.Create(c.Request.Context(), partner); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create partner")
		return
	}
	common.RespondSuccessMessage(c, "Partner created", partner)
}

// UpdatePartner 更新伙伴
// PUT /api/v1/partners/:id
func (h *Handler) UpdatePartner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid partner id")
		return
	}

	var req partnerRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	partner, err := h.service.Get(c.Request.Context(), uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Partner not found")
		return
	}

	req.apply(partner)
	if err := h.service.Update(c.Request.Context(), partner); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update partner")
		return
	}
	common.RespondSuccessMessage(c, "Partner updated", partner)
}

// DeletePartner 删除伙伴并级联移除其资产
// DELETE /api/v1/partners/:id
func (h *Handler) DeletePartner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid partner id")
		return
	}

	if _, err := h.service.Get(c.Request.Context(), uint(id)); err != nil {
		common.RespondError(c, http.StatusNotFound, "Partner not found")
		return
	}

	if err := h.deleteService.DetachOwner(c.Request.Context(), models.OwnerTypePartner, uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to remove partner assets")
		return
	}
	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete partner")
		return
	}
	common.RespondSuccessMessage(c, "Partner deleted", nil)
}
