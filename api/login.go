package api

import (
	"net/http"
	"time"

	"github.com/anoixa/content-hub/api/common"
	"github.com/anoixa/content-hub/database/repo/users"
	"github.com/anoixa/content-hub/utils/crypto"
	"github.com/gin-gonic/gin"
)

// LoginHandler 登录处理器
type LoginHandler struct {
	usersRepo *users.Repository
}

// NewLoginHandler 创建登录处理器
func NewLoginHandler(usersRepo *users.Repository) *LoginHandler {
	return &LoginHandler{usersRepo: usersRepo}
}

type userAuthRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
}

// LoginHandlerFunc 用户登录
func (h *LoginHandler) LoginHandlerFunc(context *gin.Context) {
	var req userAuthRequestBody
	if err := context.ShouldBindJSON(&req); err != nil {
		common.RespondError(context, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.usersRepo.GetByUsername(req.Username)
	if err != nil {
		// 不区分用户不存在和密码错误
		common.RespondError(context, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	match, err := crypto.ComparePasswordAndHash(req.Password, user.Password)
	if err != nil || !match {
		common.RespondError(context, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expiry, err := GenerateAccessToken(user.Username, user.ID, user.Role)
	if err != nil {
		common.RespondError(context, http.StatusInternalServerError, "Internal server error")
		return
	}

	refreshToken, refreshExpiry, err := GenerateRefreshToken(user.Username, user.ID, user.Role)
	if err != nil {
		common.RespondError(context, http.StatusInternalServerError, "Internal server error")
		return
	}
	setRefreshCookie(context, refreshToken, int(time.Until(refreshExpiry).Seconds()))

	common.RespondSuccessMessage(context, "Login successful", loginResponse{
		AccessToken:       "Bearer " + token,
		AccessTokenExpiry: expiry.Unix(),
	})
}

// RefreshTokenHandlerFunc 用刷新令牌换取新的访问令牌
func (h *LoginHandler) RefreshTokenHandlerFunc(context *gin.Context) {
	refreshToken, err := context.Cookie("refresh_token")
	if err != nil {
		common.RespondError(context, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	claims, err := ParseRefreshToken(refreshToken)
	if err != nil {
		common.RespondError(context, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	userID, _ := claims["user_id"].(float64)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	// 用户可能已被删除，刷新前确认还存在
	if _, err := h.usersRepo.GetByID(uint(userID)); err != nil {
		common.RespondError(context, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	token, expiry, err := GenerateAccessToken(username, uint(userID), role)
	if err != nil {
		common.RespondError(context, http.StatusInternalServerError, "Internal server error")
		return
	}

	newRefreshToken, refreshExpiry, err := GenerateRefreshToken(username, uint(userID), role)
	if err != nil {
		common.RespondError(context, http.StatusInternalServerError, "Internal server error")
		return
	}
	setRefreshCookie(context, newRefreshToken, int(time.Until(refreshExpiry).Seconds()))

	common.RespondSuccessMessage(context, "Refresh token successful", loginResponse{
		AccessToken:       "Bearer " + token,
		AccessTokenExpiry: expiry.Unix(),
	})
}

// LogoutHandlerFunc 用户登出，清除刷新令牌 Cookie
func (h *LoginHandler) LogoutHandlerFunc(context *gin.Context) {
	setRefreshCookie(context, "", -1)
	common.RespondSuccessMessage(context, "Logout successful", nil)
}

func setRefreshCookie(context *gin.Context, token string, maxAge int) {
	context.SetSameSite(http.SameSiteStrictMode)
	context.SetCookie("refresh_token", token, maxAge, "/api/auth", "", false, true)
}
