package core

import (
	"net/http"
	"time"

	"github.com/anoixa/content-hub/api/middleware"
	"github.com/anoixa/content-hub/cache"
	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	DB             *gorm.DB
	StorageFactory *storage.Factory
	CacheProvider  cache.Provider
}

// setupRouter 创建 gin 引擎并注册全部路由
func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := config.Get()
	router := gin.New()

	// 仅在开发版本时启用 gin 日志
	if config.CommitHash == "n/a" {
		router.Use(gin.Logger())
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 批量上传按最大的视频上限估算内存
	router.MaxMultipartMemory = int64(cfg.UploadVideoMaxSizeMB) << 20

	authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	mediaRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitMediaRPS, cfg.RateLimitMediaBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		authRateLimiter.StopCleanup()
		apiRateLimiter.StopCleanup()
		mediaRateLimiter.StopCleanup()
	}

	RegisterRoutes(router, &RouterDependencies{
		DB:               deps.DB,
		Repositories:     NewRepositories(deps.DB),
		StorageFactory:   deps.StorageFactory,
		CacheProvider:    deps.CacheProvider,
		Config:           cfg,
		AuthRateLimiter:  authRateLimiter,
		APIRateLimiter:   apiRateLimiter,
		MediaRateLimiter: mediaRateLimiter,
	})

	return router, cleanup
}

// StartServer 创建 http.Server
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := config.Get()
	router, cleanup := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
	return srv, cleanup
}
