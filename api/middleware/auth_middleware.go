package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anoixa/content-hub/api"
	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/database/models"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

// JWTAuth 校验 Bearer 令牌并把用户信息写入上下文
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.RespondError(c, http.StatusBadRequest, "Authorization field format error")
			c.Abort()
			return
		}

		if err := handleJwtAuth(c, parts[1]); err != nil {
			common.RespondError(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}

func handleJwtAuth(c *gin.Context, token string) error {
	claims, err := api.Parse(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	userIDValue, ok := claims["user_id"].(float64)
	if !ok {
		return errors.New("user_id not found in token claims")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return errors.New("username not found in token claims")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleAdmin
	}

	c.Set(ContextUserIDKey, uint(userIDValue))
	c.Set(ContextUsernameKey, username)
	c.Set(ContextRoleKey, role)
	return nil
}

// RequireRole 要求上下文中的角色匹配
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != role {
			common.RespondError(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
