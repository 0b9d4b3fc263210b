package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/assets"
	mediaSvc "github.com/anoixa/content-hub/internal/services/media"
	"github.com/anoixa/content-hub/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 每个测试使用独立的共享缓存内存库，避免连接池拿到不同的内存数据库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Asset{}, &models.AssetOwnerLock{}))

	factory, err := storage.NewFactory(&config.Config{
		StorageType:      "local",
		StorageLocalPath: t.TempDir(),
	})
	require.NoError(t, err)

	repo := assets.NewRepository(db)
	policy := mediaSvc.NewPolicyWith(
		[]string{"image/jpeg", "image/png"},
		[]string{"video/mp4"},
		10<<20,
		50<<20,
	)
	uploadService := mediaSvc.NewUploadService(repo, factory, policy, 10, 100)
	deleteService := mediaSvc.NewDeleteService(repo, factory)
	handler := NewHandler(uploadService, deleteService, repo, factory, nil, 60)

	router := gin.New()
	router.POST("/:ownerType/:ownerID/assets", handler.AttachAsset)
	router.GET("/:ownerType/:ownerID/assets", handler.ListAssets)
	router.DELETE("/assets/:id", handler.DetachAsset)
	router.GET("/uploads/:name", handler.GetAsset)
	return router, handler
}

func multipartBody(t *testing.T, field, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// TestAttachAsset_ThenServe 上传后可以通过公开路径取回
func TestAttachAsset_ThenServe(t *testing.T) {
	router, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, "file", "photo.jpg", "image/jpeg", "jpeg-bytes")
	req := httptest.NewRequest(http.MethodPost, "/gallery/1/assets", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			StorageName string `json:"storage_name"`
			IsPrimary   bool   `json:"is_primary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsPrimary)
	require.NotEmpty(t, resp.Data.StorageName)

	getReq := httptest.NewRequest(http.MethodGet, "/uploads/"+resp.Data.StorageName, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	assert.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, "jpeg-bytes", getRec.Body.String())
	assert.Equal(t, "image/jpeg", getRec.Header().Get("Content-Type"))
}

// TestAttachAsset_UnsupportedType 不支持的类型返回 400
func TestAttachAsset_UnsupportedType(t *testing.T) {
	router, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, "file", "doc.pdf", "application/pdf", "pdf-bytes")
	req := httptest.NewRequest(http.MethodPost, "/gallery/1/assets", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestAttachAsset_UnknownOwnerType 未知持有者类型被拒绝
func TestAttachAsset_UnknownOwnerType(t *testing.T) {
	router, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, "file", "photo.jpg", "image/jpeg", "x")
	req := httptest.NewRequest(http.MethodPost, "/banners/1/assets", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestGetAsset_InvalidName 非法名称不触达存储层
func TestGetAsset_InvalidName(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/uploads/bad%20name.jpg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestGetAsset_NotFound 未知名称返回 404
func TestGetAsset_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/uploads/deadbeef.jpg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestDetachAsset 删除后公开路径返回 404
func TestDetachAsset(t *testing.T) {
	router, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, "file", "photo.jpg", "image/jpeg", "x")
	req := httptest.NewRequest(http.MethodPost, "/gallery/2/assets", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ID          uint   `json:"id"`
			StorageName string `json:"storage_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	delReq := httptest.NewRequest(http.MethodDelete, "/assets/1", nil)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	assert.Equal(t, http.StatusOK, delRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/uploads/"+resp.Data.StorageName, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}
