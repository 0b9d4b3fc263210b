package team

import (
	"net/http"
	"strconv"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/team"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	"github.com/gin-gonic/gin"
)

// Handler 团队成员处理器
type Handler struct {
	repo          *team.Repository
	deleteService *mediaSvc.DeleteService
}

// NewHandler 创建团队成员处理器
func NewHandler(repo *team.Repository, deleteService *mediaSvc.DeleteService) *Handler {
	return &Handler{repo: repo, deleteService: deleteService}
}

type memberRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Email    string `json:"email"`
	Position int    `json:"position"`
}

// ListMembers 按展示顺序获取全部成员
// GET /api/v1/team
func (h *Handler) ListMembers(c *gin.Context) {
	items, err := h.repo.WithContext(c.Request.Context()).List()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list team members")
		return
	}
	common.RespondSuccess(c, gin.H{"members": items})
}

// GetMember 获取单个成员
// GET /api/v1/team/:id
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	member, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Team member not found")
		return
	}
	common.RespondSuccess(c, member)
}

// CreateMember 创建成员
// POST /api/v1/team
func (h *Handler) CreateMember(c *gin.Context) {
	var req memberRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	member := &models.TeamMember{
		Name:     req.Name,
		Role:     req.Role,
		Bio:      req.Bio,
		Email:    req.Email,
		Position: req.Position,
	}
	if err := h.repo.WithContext(c.Request.Context()).Create(member); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create team member")
		return
	}
	common.RespondSuccessMessage(c, "Team member created", member)
}

// UpdateMember 更新成员
// PUT /api/v1/team/:id
func (h *Handler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	var req memberRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Team member not found")
		return
	}

	member.Name = req.Name
	member.Role = req.Role
	member.Bio = req.Bio
	member.Email = req.Email
	member.Position = req.Position
	if err := h.repo.WithContext(c.Request.Context()).Update(member); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update team member")
		return
	}
	common.RespondSuccessMessage(c, "Team member updated", member)
}

// DeleteMember 删除成员并级联移除头像等资产
// DELETE /api/v1/team/:id
func (h *Handler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	if _, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id)); err != nil {
		common.RespondError(c, http.StatusNotFound, "Team member not found")
		return
	}

	if err := h.deleteService.DetachOwner(c.Request.Context(), models.OwnerTypeTeamMember, uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to remove member assets")
		return
	}
	if err := h.repo.WithContext(c.Request.Context()).Delete(uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete team member")
		return
	}
	common.RespondSuccessMessage(c, "Team member deleted", nil)
}
