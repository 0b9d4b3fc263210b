package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anoixa/content-hub/database/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// roleRouter 构造一条带角色守卫的测试路由，role 模拟 JWTAuth 写入上下文的角色
func roleRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) { c.Set(ContextRoleKey, role) },
		RequireRole(models.RoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

// TestRequireRole_AllowsMatchingRole 角色匹配时放行
func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	w := httptest.NewRecorder()
	roleRouter(models.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRequireRole_RejectsOtherRole 角色不匹配时返回 403
func TestRequireRole_RejectsOtherRole(t *testing.T) {
	w := httptest.NewRecorder()
	roleRouter("viewer").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestRequireRole_RejectsMissingRole 上下文缺角色同样拒绝
func TestRequireRole_RejectsMissingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
