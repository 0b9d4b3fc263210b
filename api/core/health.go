package core

import (
	"context"
	"net/http"
	"time"

	"github.com/anoixa/content-hub/cache"
	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db             *gorm.DB
	storageFactory *storage.Factory
	cacheProvider  cache.Provider
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db *gorm.DB, storageFactory *storage.Factory, cacheProvider cache.Provider) *HealthHandler {
	return &HealthHandler{
		db:             db,
		storageFactory: storageFactory,
		cacheProvider:  cacheProvider,
	}
}

// Handle 汇总各依赖的健康状态
// GET /health
func (h *HealthHandler) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{
		"database": h.checkDatabase(ctx),
		"storage":  h.checkStorage(ctx),
		"cache":    h.checkCache(ctx),
	}

	httpStatus := http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	response := gin.H{
		"status":  statusWord(httpStatus),
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"version": config.Version,
		"checks":  checks,
	}
	if h.storageFactory != nil {
		response["storage"] = gin.H{
			"default":   h.storageFactory.GetDefaultName(),
			"providers": h.storageFactory.ListProviders(),
		}
	}

	c.JSON(httpStatus, response)
}

func statusWord(httpStatus int) string {
	if httpStatus == http.StatusOK {
		return "ok"
	}
	return "degraded"
}

func (h *HealthHandler) checkDatabase(ctx context.Context) string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkStorage(ctx context.Context) string {
	if h.storageFactory == nil {
		return "not configured"
	}
	if err := h.storageFactory.GetDefault().Health(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkCache(ctx context.Context) string {
	if h.cacheProvider == nil {
		return "not configured"
	}
	if _, err := h.cacheProvider.Exists(ctx, "health:probe"); err != nil {
		return err.Error()
	}
	return "ok"
}
