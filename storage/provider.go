package storage

import (
	"context"
	"errors"
	"io"
)

// 存储层哨兵错误
var (
	// ErrPathEscape 解析出的路径越出存储根目录，属于安全错误，永不重试
	ErrPathEscape = errors.New("storage: path escapes storage root")

	// ErrNotFound 请求的文件不存在
	ErrNotFound = errors.New("storage: file not found")

	// ErrAlreadyExists 目标名称已被占用且未要求覆盖
	ErrAlreadyExists = errors.New("storage: file already exists")
)

// Provider 存储提供者接口 - 依赖倒置的核心抽象
// 定义了存储层的基本操作，所有存储实现必须遵循此接口
type Provider interface {
	// SaveWithContext 保存文件到存储，replace 为 false 时不覆盖已有文件
	SaveWithContext(ctx context.Context, storageName string, file io.Reader, replace bool) error

	// GetWithContext 从存储获取文件
	GetWithContext(ctx context.Context, storageName string) (io.ReadCloser, error)

	// DeleteWithContext 从存储删除文件，删除不存在的文件不视为错误
	DeleteWithContext(ctx context.Context, storageName string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, storageName string) (bool, error)

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}

// IsValidStorageName 校验存储名称是否合法
// 存储名称由分配器生成，扁平无目录层级，仅允许安全字符
func IsValidStorageName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') &&
			(r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') &&
			r != '-' && r != '_' && r != '.' {
			return false
		}
	}

	return true
}
