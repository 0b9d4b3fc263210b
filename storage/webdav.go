package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/studio-b12/gowebdav"
)

// WebdavSettings WebDAV 提供者配置
type WebdavSettings struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	RootPath string `mapstructure:"root_path"`
}

// WebdavStorage WebDAV 存储实现
type WebdavStorage struct {
	client   *gowebdav.Client
	rootPath string
}

// NewWebdavStorage 创建 WebDAV 存储提供者
func NewWebdavStorage(cfg WebdavSettings) (*WebdavStorage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.RootPath, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)

	if rootPath != "" {
		if err := client.MkdirAll(rootPath, os.FileMode(0755)); err != nil {
			if _, statErr := client.Stat(rootPath); statErr != nil {
				return nil, fmt.Errorf("failed to prepare webdav root '%s': %w", rootPath, err)
			}
		}
	}

	return &WebdavStorage{
		client:   client,
		rootPath: rootPath,
	}, nil
}

// fullPath 生成完整的 WebDAV 路径
func (s *WebdavStorage) fullPath(storageName string) string {
	if s.rootPath != "" {
		return s.rootPath + "/" + storageName
	}
	return "/" + storageName
}

// SaveWithContext 保存文件到 WebDAV
func (s *WebdavStorage) SaveWithContext(ctx context.Context, storageName string, file io.Reader, replace bool) error {
	if !IsValidStorageName(storageName) {
		return fmt.Errorf("%w: invalid storage name %q", ErrPathEscape, storageName)
	}

	if !replace {
		exists, err := s.Exists(ctx, storageName)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, storageName)
		}
	}

	// gowebdav 的 Write 需要完整内容
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file content: %w", err)
	}

	if err := s.client.Write(s.fullPath(storageName), data, os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to write '%s' to webdav: %w", storageName, err)
	}

	return nil
}

// GetWithContext 从 WebDAV 获取文件
func (s *WebdavStorage) GetWithContext(ctx context.Context, storageName string) (io.ReadCloser, error) {
	if !IsValidStorageName(storageName) {
		return nil, fmt.Errorf("%w: invalid storage name %q", ErrPathEscape, storageName)
	}

	data, err := s.client.Read(s.fullPath(storageName))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storageName)
		}
		return nil, fmt.Errorf("failed to read '%s' from webdav: %w", storageName, err)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// DeleteWithContext 从 WebDAV 删除文件，文件不存在时为幂等空操作
func (s *WebdavStorage) DeleteWithContext(ctx context.Context, storageName string) error {
	if !IsValidStorageName(storageName) {
		return fmt.Errorf("%w: invalid storage name %q", ErrPathEscape, storageName)
	}

	if err := s.client.Remove(s.fullPath(storageName)); err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete '%s' from webdav: %w", storageName, err)
	}

	return nil
}

// Exists 检查文件是否存在
func (s *WebdavStorage) Exists(ctx context.Context, storageName string) (bool, error) {
	if !IsValidStorageName(storageName) {
		return false, fmt.Errorf("%w: invalid storage name %q", ErrPathEscape, storageName)
	}

	_, err := s.client.Stat(s.fullPath(storageName))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat '%s' on webdav: %w", storageName, err)
	}
	return true, nil
}

// Health 检查存储健康状态
func (s *WebdavStorage) Health(ctx context.Context) error {
	checkPath := s.rootPath
	if checkPath == "" {
		checkPath = "/"
	}
	_, err := s.client.ReadDir(checkPath)
	return err
}

// Name 返回存储名称
func (s *WebdavStorage) Name() string {
	return "webdav"
}
