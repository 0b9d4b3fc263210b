package media

import (
	"errors"
	"log"
	"net/http"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/cache"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/assets"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	"github.com/anoixa/content-hub/storage"
	"github.com/anoixa/content-hub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler 媒体资产处理器
type Handler struct {
	uploadService *mediaSvc.UploadService
	deleteService *mediaSvc.DeleteService
	assetsRepo    *assets.Repository
	storage       *storage.Factory
	cacheProvider cache.Provider
	cacheTTL      int
}

// NewHandler 创建媒体资产处理器
func NewHandler(uploadService *mediaSvc.UploadService, deleteService *mediaSvc.DeleteService, assetsRepo *assets.Repository, storageFactory *storage.Factory, cacheProvider cache.Provider, cacheTTL int) *Handler {
	return &Handler{
		uploadService: uploadService,
		deleteService: deleteService,
		assetsRepo:    assetsRepo,
		storage:       storageFactory,
		cacheProvider: cacheProvider,
		cacheTTL:      cacheTTL,
	}
}

// ownerTypeFromParam 把路径参数映射到持有者类型
func ownerTypeFromParam(param string) (string, bool) {
	switch param {
	case models.OwnerTypeGallery, models.OwnerTypeTeamMember, models.OwnerTypePartner, models.OwnerTypeProject:
		return param, true
	default:
		return "", false
	}
}

// respondMediaError 把服务层错误映射为 HTTP 响应
func respondMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mediaSvc.ErrEmptyUpload),
		errors.Is(err, mediaSvc.ErrUnsupportedType),
		errors.Is(err, mediaSvc.ErrSizeExceeded),
		errors.Is(err, mediaSvc.ErrBatchTooLarge),
		errors.Is(err, mediaSvc.ErrTooManyAssets):
		common.RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrPathEscape):
		// 不泄露路径细节，详情只记录在服务端日志
		log.Printf("Rejected path escape attempt from %s: %v", c.ClientIP(), utils.SanitizeLogMessage(err.Error()))
		common.RespondError(c, http.StatusBadRequest, "Invalid file name")
	case errors.Is(err, assets.ErrNotOwned):
		common.RespondError(c, http.StatusForbidden, "Asset does not belong to this owner")
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, storage.ErrNotFound):
		common.RespondError(c, http.StatusNotFound, "Asset not found")
	default:
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
