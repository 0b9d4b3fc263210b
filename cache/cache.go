package cache

import (
	"fmt"

	"github.com/anoixa/content-hub/config"
)

var defaultProvider Provider

// Init 根据配置初始化缓存层
func Init(cfg *config.Config) error {
	provider, err := createProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create cache provider: %w", err)
	}
	defaultProvider = provider
	return nil
}

// GetDefault 获取默认缓存提供者
func GetDefault() Provider {
	return defaultProvider
}

// Close 关闭默认缓存提供者
func Close() error {
	if defaultProvider == nil {
		return nil
	}
	return defaultProvider.Close()
}

func createProvider(cfg *config.Config) (Provider, error) {
	switch cfg.CacheType {
	case "", "memory":
		return NewMemoryCache(MemoryConfig{Metrics: true})
	case "redis":
		return NewRedisCache(RedisConfig{
			Address:  cfg.CacheRedisAddr,
			Password: cfg.CacheRedisPassword,
			DB:       cfg.CacheRedisDB,
		})
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
