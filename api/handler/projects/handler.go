package projects

import (
	"net/http"
	"strconv"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/projects"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	"github.com/gin-gonic/gin"
)

// Handler 项目处理器
type Handler struct {
	repo          *projects.Repository
	deleteService *mediaSvc.DeleteService
}

// NewHandler 创建项目处理器
func NewHandler(repo *projects.Repository, deleteService *mediaSvc.DeleteService) *Handler {
	return &Handler{repo: repo, deleteService: deleteService}
}

type projectRequestBody struct {
	Title     string `json:"title" binding:"required"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// ListProjects 分页获取项目列表
// GET /api/v1/projects
func (h *Handler) ListProjects(c *gin.Context) {
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
		common.RespondError(c, http.StatusInternalServerError, "Failed to list projects")
		return
	}
	common.RespondSuccess(c, gin.H{"projects": items, "total": total})
}

// GetProject 获取单个项目及其关联伙伴
// GET /api/v1/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	project, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}
	common.RespondSuccess(c, project)
}

// CreateProject 创建项目
// POST /api/v1/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	project := &models.Project{
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		Published: req.Published,
	}
	if err := h.repo.WithContext(c.Request.Context()).Create(project); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create project")
		return
	}
	common.RespondSuccessMessage(c, "Project created", project)
}

// UpdateProject 更新项目
// PUT /api/v1/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req projectRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}

	project.Title = req.Title
	project.Summary = req.Summary
	project.Body = req.Body
	project.Published = req.Published
	if err := h.repo.WithContext(c.Request.Context()).Update(project); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}
	common.RespondSuccessMessage(c, "Project updated", project)
}

// DeleteProject 删除项目并级联移除其资产和伙伴关联
// DELETE /api/v1/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	if _, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id)); err != nil {
		common.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}

	if err := h.deleteService.DetachOwner(c.Request.Context(), models.OwnerTypeProject, uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to remove project assets")
		return
	}
	if err := h.repo.WithContext(c.Request.Context()).Delete(uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	common.RespondSuccessMessage(c, "Project deleted", nil)
}
