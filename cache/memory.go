package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto"
)

// MemoryConfig 内存缓存配置
type MemoryConfig struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

// MemoryCache 基于 ristretto 的进程内缓存
type MemoryCache struct {
	client *ristretto.Cache
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache(config MemoryConfig) (*MemoryCache, error) {
	if config.NumCounters == 0 {
		config.NumCounters = 1000000
	}
	if config.MaxCost == 0 {
		config.MaxCost = 268435456 // 256MB
	}
	if config.BufferItems == 0 {
		config.BufferItems = 64
	}

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
		Metrics:     config.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &MemoryCache{client: client}, nil
}

// Set 设置缓存项
func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if m.client.SetWithTTL(key, data, int64(len(data)), expiration) {
		// 等待值被实际写入，保证后续读取可见
		m.client.Wait()
	}
	return nil
}

// Get 获取缓存项
func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	value, found := m.client.Get(key)
	if !found {
		return ErrCacheMiss
	}
	data, ok := value.([]byte)
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存项
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.client.Del(key)
	return nil
}

// Exists 检查缓存项是否存在
func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, found := m.client.Get(key)
	return found, nil
}

// Close 关闭缓存
func (m *MemoryCache) Close() error {
	m.client.Close()
	return nil
}

// Name 返回提供者名称
func (m *MemoryCache) Name() string {
	return "memory"
}
