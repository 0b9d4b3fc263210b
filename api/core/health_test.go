package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealthHandler_ReportsStorageProviders 健康响应包含存储提供者信息
func TestHealthHandler_ReportsStorageProviders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	factory, err := storage.NewFactory(&config.Config{
		StorageType:      "local",
		StorageLocalPath: t.TempDir(),
	})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/health", NewHealthHandler(nil, factory, nil).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	// 数据库和缓存未配置，整体降级
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	storageInfo, ok := body["storage"].(map[string]interface{})
	require.True(t, ok, "health response must carry a storage section")
	assert.Equal(t, "local", storageInfo["default"])
	assert.Contains(t, storageInfo["providers"], "local")

	checks, ok := body["checks"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", checks["storage"])
}
