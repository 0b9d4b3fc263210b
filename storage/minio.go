package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioSettings MinIO 提供者配置
type MinioSettings struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// MinioStorage 基于 S3 兼容对象存储的实现
type MinioStorage struct {
	client     *minio.Client
	bucketName string
}

// NewMinioStorage 创建 MinIO 存储提供者
func NewMinioStorage(cfg MinioSettings) (*MinioStorage, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       time.Minute,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 10 * time.Second,
		DisableCompression:    true,
	}

	if cfg.UseSSL {
		transport.TLSClientConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:    cfg.UseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket '%s' exists: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.BucketName, err)
		}
	}

	return &MinioStorage{
		client:     client,
		bucketName: cfg.BucketName,
	}, nil
}

// SaveWithContext 将文件上传到 MinIO
func (s *MinioStorage) SaveWithContext(ctx context.Context, storageName string, file io.Reader, replace bool) error {
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

	_, err := s.client.PutObject(ctx, s.bucketName, storageName, file, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload object '%s' to minio: %w", storageName, err)
	}

	return nil
}

// GetWithContext 从 MinIO 获取文件
func (s *MinioStorage) GetWithContext(ctx context.Context, storageName string) (io.ReadCloser, error) {
	if !IsValidStorageName(storageName) {
		return nil, fmt.Errorf("%w: invalid storage name %q", ErrPathEscape, storageName)
	}

	obj, err := s.client.GetObject(ctx, s.bucketName, storageName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object stream from minio for '%s': %w", storageName, err)
	}

	// GetObject 是惰性的，Stat 确认对象存在
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storageName)
		}
		return nil, fmt.Errorf("failed to stat object '%s' in minio: %w", storageName, err)
	}

	return obj, nil
}

// DeleteWithContext 从 MinIO 删除文件，对象不存在时为幂等空操作
func (s *MinioStorage) DeleteWithContext(ctx context.Context, storageName string) error {
	if !IsValidStorageName(storageName) {
		return fmt.Errorf("%w: invalid storage name %q", ErrPathEscape, storageName)
	}

	err := s.client.RemoveObject(ctx, s.bucketName, storageName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object '%s' from minio: %w", storageName, err)
	}

	return nil
}

// Exists 检查对象是否存在
func (s *MinioStorage) Exists(ctx context.Context, storageName string) (bool, error) {
	if !IsValidStorageName(storageName) {
		return false, fmt.Errorf("%w: invalid storage name %q", ErrPathEscape, storageName)
	}

	_, err := s.client.StatObject(ctx, s.bucketName, storageName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object '%s' in minio: %w", storageName, err)
	}
	return true, nil
}

// Health 检查存储健康状态
func (s *MinioStorage) Health(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}

// Name 返回存储名称
func (s *MinioStorage) Name() string {
	return "minio"
}
