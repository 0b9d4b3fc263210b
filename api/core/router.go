package core

import (
	"github.com/anoixa/content-hub/api"
	"github.com/anoixa/content-hub/api/common"
	handlerGalleries "github.com/anoixa/content-hub/api/handler/galleries"
	handlerMedia "github.com/anoixa/content-hub/api/handler/media"
	handlerPages "github.com/anoixa/content-hub/api/handler/pages"
	handlerPartners "github.com/anoixa/content-hub/api/handler/partners"
	handlerProjects "github.com/anoixa/content-hub/api/handler/projects"
	handlerTeam "github.com/anoixa/content-hub/api/handler/team"
	"github.com/anoixa/content-hub/api/middleware"
	"github.com/anoixa/content-hub/cache"
	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/assets"
	"github.com/anoixa/content-hub/database/repo/galleries"
	"github.com/anoixa/content-hub/database/repo/pages"
	"github.com/anoixa/content-hub/database/repo/partners"
	"github.com/anoixa/content-hub/database/repo/projects"
	"github.com/anoixa/content-hub/database/repo/team"
	"github.com/anoixa/content-hub/database/repo/users"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	partnersSvc "github.com/anoixa/content-hub/internal/services/partners"
	"github.com/anoixa/content-hub/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Repositories 聚合所有仓库
type Repositories struct {
	Assets    *assets.Repository
	Galleries *galleries.Repository
	Projects  *projects.Repository
	Partners  *partners.Repository
	Team      *team.Repository
	Pages     *pages.Repository
	Users     *users.Repository
}

// NewRepositories 基于同一个数据库连接创建全部仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Assets:    assets.NewRepository(db),
		Galleries: galleries.NewRepository(db),
		Projects:  projects.NewRepository(db),
		Partners:  partners.NewRepository(db),
		Team:      team.NewRepository(db),
		Pages:     pages.NewRepository(db),
		Users:     users.NewRepository(db),
	}
}

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	DB               *gorm.DB
	Repositories     *Repositories
	StorageFactory   *storage.Factory
	CacheProvider    cache.Provider
	Config           *config.Config
	AuthRateLimiter  *middleware.IPRateLimiter
	APIRateLimiter   *middleware.IPRateLimiter
	MediaRateLimiter *middleware.IPRateLimiter
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	cfg := deps.Config
	repos := deps.Repositories

	policy := mediaSvc.NewPolicy(cfg)
	uploadService := mediaSvc.NewUploadService(repos.Assets, deps.StorageFactory, policy, cfg.UploadMaxBatchFiles, cfg.UploadMaxAssetsPerOwner)
	deleteService := mediaSvc.NewDeleteService(repos.Assets, deps.StorageFactory)
	partnerService := partnersSvc.NewService(repos.Partners)

	mediaHandler := handlerMedia.NewHandler(uploadService, deleteService, repos.Assets, deps.StorageFactory, deps.CacheProvider, cfg.CacheAssetTTL)
	galleryHandler := handlerGalleries.NewHandler(repos.Galleries, deleteService)
	projectHandler := handlerProjects.NewHandler(repos.Projects, deleteService)
	partnerHandler := handlerPartners.NewHandler(partnerService, deleteService)
	teamHandler := handlerTeam.NewHandler(repos.Team, deleteService)
	pageHandler := handlerPages.NewHandler(repos.Pages, deps.CacheProvider, cfg.CacheAssetTTL)
	loginHandler := api.NewLoginHandler(repos.Users)
	healthHandler := NewHealthHandler(deps.DB, deps.StorageFactory, deps.CacheProvider)

	// 基础路由
	router.GET("/health", healthHandler.Handle)
	router.GET("/version", func(context *gin.Context) {
		common.RespondSuccess(context, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	// 公共文件访问
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(deps.MediaRateLimiter.Middleware())
	{
		uploadsGroup.GET("/:name", mediaHandler.GetAsset) // GET /uploads/{name}
	}

	// 公共页面访问
	pagesGroup := router.Group("/pages")
	pagesGroup.Use(deps.APIRateLimiter.Middleware())
	{
		pagesGroup.GET("/:slug", pageHandler.GetPublishedPage) // GET /pages/{slug}
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(func(context *gin.Context) { // 所有API禁止缓存
		context.Header("Cache-Control", "no-store")
		context.Next()
	})
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(deps.AuthRateLimiter.Middleware())
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc)          // POST /api/auth/login
			authGroup.POST("/refresh", loginHandler.RefreshTokenHandlerFunc) // POST /api/auth/refresh
			authGroup.POST("/logout", loginHandler.LogoutHandlerFunc)        // POST /api/auth/logout
		}

		v1 := apiGroup.Group("/v1")
		v1.Use(deps.APIRateLimiter.Middleware())
		v1.Use(middleware.JWTAuth())
		v1.Use(middleware.RequireRole(models.RoleAdmin))
		{
			// 媒体资产管理
			ownerAssets := v1.Group("/:ownerType/:ownerID/assets")
			{
				ownerAssets.GET("", mediaHandler.ListAssets)                 // GET /api/v1/{ownerType}/{id}/assets
				ownerAssets.POST("", mediaHandler.AttachAsset)               // POST /api/v1/{ownerType}/{id}/assets
				ownerAssets.POST("/batch", mediaHandler.AttachAssets)        // POST /api/v1/{ownerType}/{id}/assets/batch
				ownerAssets.GET("/primary", mediaHandler.GetPrimaryAsset)    // GET /api/v1/{ownerType}/{id}/assets/primary
				ownerAssets.POST("/reorder", mediaHandler.ReorderAssets)     // POST /api/v1/{ownerType}/{id}/assets/reorder
				ownerAssets.POST("/:id/primary", mediaHandler.SetPrimaryAsset) // POST /api/v1/{ownerType}/{id}/assets/{id}/primary
			}
			v1.DELETE("/assets/:id", mediaHandler.DetachAsset) // DELETE /api/v1/assets/{id}

			registerContentRoutes(v1, galleryHandler, projectHandler, partnerHandler, teamHandler, pageHandler)
		}
	}
}

// registerContentRoutes 注册内容实体 CRUD 路由
func registerContentRoutes(v1 *gin.RouterGroup, galleryHandler *handlerGalleries.Handler, projectHandler *handlerProjects.Handler, partnerHandler *handlerPartners.Handler, teamHandler *handlerTeam.Handler, pageHandler *handlerPages.Handler) {
	galleriesGroup := v1.Group("/galleries")
	{
		galleriesGroup.GET("", galleryHandler.ListGalleries)
		galleriesGroup.POST("", galleryHandler.CreateGallery)
		galleriesGroup.GET("/:id", galleryHandler.GetGallery)
		galleriesGroup.PUT("/:id", galleryHandler.UpdateGallery)
		galleriesGroup.DELETE("/:id", galleryHandler.DeleteGallery)
	}

	projectsGroup := v1.Group("/projects")
	{
		projectsGroup.GET("", projectHandler.ListProjects)
		projectsGroup.POST("", projectHandler.CreateProject)
		projectsGroup.GET("/:id", projectHandler.GetProject)
		projectsGroup.PUT("/:id", projectHandler.UpdateProject)
		projectsGroup.DELETE("/:id", projectHandler.DeleteProject)
	}

	partnersGroup := v1.Group("/partners")
	{
		partnersGroup.GET("", partnerHandler.ListPartners)
		partnersGroup.POST("", partnerHandler.CreatePartner)
		partnersGroup.GET("/:id", partnerHandler.GetPartner)
		partnersGroup.PUT("/:id", partnerHandler.UpdatePartner)
		partnersGroup.DELETE("/:id", partnerHandler.DeletePartner)
	}

	teamGroup := v1.Group("/team")
	{
		teamGroup.GET("", teamHandler.ListMembers)
		teamGroup.POST("", teamHandler.CreateMember)
		teamGroup.GET("/:id", teamHandler.GetMember)
		teamGroup.PUT("/:id", teamHandler.UpdateMember)
		teamGroup.DELETE("/:id", teamHandler.DeleteMember)
	}

	adminPagesGroup := v1.Group("/pages")
	{
		adminPagesGroup.GET("", pageHandler.ListPages)
		adminPagesGroup.POST("", pageHandler.CreatePage)
		adminPagesGroup.PUT("/:id", pageHandler.UpdatePage)
		adminPagesGroup.DELETE("/:id", pageHandler.DeletePage)
	}
}
