package pages

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/cache"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/pages"
	"github.com/gin-gonic/gin"
)

// Handler 静态页面处理器
type Handler struct {
	repo          *pages.Repository
	cacheProvider cache.Provider
	cacheTTL      int
}

// NewHandler 创建页面处理器
func NewHandler(repo *pages.Repository, cacheProvider cache.Provider, cacheTTL int) *Handler {
	return &Handler{repo: repo, cacheProvider: cacheProvider, cacheTTL: cacheTTL}
}

type pageRequestBody struct {
	Slug      string `json:"slug" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// GetPublishedPage 公开读取已发布页面，优先走缓存
// GET /pages/:slug
func (h *Handler) GetPublishedPage(c *gin.Context) {
	slug := c.Param("slug")
	key := cache.PageKey(slug)

	if h.cacheProvider != nil {
		var page models.Page
		if err := h.cacheProvider.Get(c.Request.Context(), key, &page); err == nil {
			common.RespondSuccess(c, page)
			return
		}
	}

	page, err := h.repo.WithContext(c.Request.Context()).GetBySlug(slug)
	if err != nil || !page.Published {
		common.RespondError(c, http.StatusNotFound, "Page not found")
		return
	}

	if h.cacheProvider != nil {
		ttl := time.Duration(h.cacheTTL) * time.Second
		_ = h.cacheProvider.Set(c.Request.Context(), key, page, ttl)
	}
	common.RespondSuccess(c, page)
}

// ListPages 获取全部页面
// GET /api/v1/pages
func (h *Handler) ListPages(c *gin.Context) {
	items, err := h.repo.WithContext(c.Request.Context()).List(false)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list pages")
		return
	}
	common.RespondSuccess(c, gin.H{"pages": items})
}

// CreatePage 创建页面
// POST /api/v1/pages
func (h *Handler) CreatePage(c *gin.Context) {
	var req pageRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page := &models.Page{
		Slug:      req.Slug,
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	}
	if err := h.repo.WithContext(c.Request.Context()).Create(page); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create page")
		return
	}
	common.RespondSuccessMessage(c, "Page created", page)
}

// UpdatePage 更新页面并使缓存失效
// PUT /api/v1/pages/:id
func (h *Handler) UpdatePage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid page id")
		return
	}

	var req pageRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Page not found")
		return
	}

	oldSlug := page.Slug
	page.Slug = req.Slug
	page.Title = req.Title
	page.Body = req.Body
	page.Published = req.Published
	if err := h.repo.WithContext(c.Request.Context()).Update(page); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update page")
		return
	}

	h.invalidate(c, oldSlug)
	h.invalidate(c, page.Slug)
	common.RespondSuccessMessage(c, "Page updated", page)
}

// DeletePage 删除页面并使缓存失效
// DELETE /api/v1/pages/:id
func (h *Handler) DeletePage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid page id")
		return
	}

	page, err := h.repo.WithContext(c.Request.Context()).GetByID(uint(id))
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Page not found")
		return
	}

	if err := h.repo.WithContext(c.Request.Context()).Delete(page.ID); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete page")
		return
	}
	h.invalidate(c, page.Slug)
	common.RespondSuccessMessage(c, "Page deleted", nil)
}

func (h *Handler) invalidate(c *gin.Context, slug string) {
	if h.cacheProvider == nil {
		return
	}
	_ = h.cacheProvider.Delete(c.Request.Context(), cache.PageKey(slug))
}
