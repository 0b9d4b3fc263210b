package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomToken 生成 URL 安全的随机令牌
// entropyBytes 是随机熵的字节数，base64 编码后的输出会比它长
func RandomToken(entropyBytes int) (string, error) {
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
