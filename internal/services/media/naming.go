package media

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// fallbackExtension 原文件名没有可用扩展名时的兜底
const fallbackExtension = ".bin"

var safeExtension = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// AllocateStorageName 为已接受的上传分配存储名称
// 名称 = 随机 token + 小写扩展名，除扩展名外不使用原文件名的任何部分
func AllocateStorageName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !safeExtension.MatchString(ext) {
		ext = fallbackExtension
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token + ext
}
