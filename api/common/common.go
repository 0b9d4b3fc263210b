package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 所有接口共用的 JSON 响应信封
// Data 为空时整个字段从输出中省略
type Response struct {
	Status string      `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

// Respond 按给定 HTTP 状态码写出响应信封
func Respond(c *gin.Context, httpStatus int, status string, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Status: status,
		Msg:    message,
		Data:   data,
	})
}

// RespondSuccess 写出携带数据的成功响应
func RespondSuccess(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", "", data)
}

// RespondSuccessMessage 写出携带提示消息和数据的成功响应
func RespondSuccessMessage(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusOK, "success", message, data)
}

// RespondError 写出错误响应，message 会原样展示给客户端
func RespondError(c *gin.Context, httpStatus int, message string) {
	Respond(c, httpStatus, "error", message, nil)
}
