package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config 扁平化配置结构体
type Config struct {
	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerDomain       string        `mapstructure:"server_domain"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// 数据库配置
	DBType         string `mapstructure:"db_type"`
	DBHost         string `mapstructure:"db_host"`
	DBPort         int    `mapstructure:"db_port"`
	DBUsername     string `mapstructure:"db_username"`
	DBPassword     string `mapstructure:"db_password"`
	DBName         string `mapstructure:"db_name"`
	DBFilePath     string `mapstructure:"db_file_path"`
	DBMaxOpenConns int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns int    `mapstructure:"db_max_idle_conns"`

	// 存储配置
	StorageType      string `mapstructure:"storage_type"`
	StorageLocalPath string `mapstructure:"storage_local_path"`

	StorageMinioEndpoint  string `mapstructure:"storage_minio_endpoint"`
	StorageMinioAccessKey string `mapstructure:"storage_minio_access_key"`
	StorageMinioSecretKey string `mapstructure:"storage_minio_secret_key"`
	StorageMinioBucket    string `mapstructure:"storage_minio_bucket"`
	StorageMinioUseSSL    bool   `mapstructure:"storage_minio_use_ssl"`

	StorageWebdavURL      string `mapstructure:"storage_webdav_url"`
	StorageWebdavUser     string `mapstructure:"storage_webdav_user"`
	StorageWebdavPassword string `mapstructure:"storage_webdav_password"`
	StorageWebdavRoot     string `mapstructure:"storage_webdav_root"`

	// 缓存配置
	CacheType          string `mapstructure:"cache_type"`
	CacheAssetTTL      int    `mapstructure:"cache_asset_ttl"`
	CacheRedisAddr     string `mapstructure:"cache_redis_addr"`
	CacheRedisPassword string `mapstructure:"cache_redis_password"`
	CacheRedisDB       int    `mapstructure:"cache_redis_db"`

	// 上传策略配置
	UploadImageMaxSizeMB    int    `mapstructure:"upload_image_max_size_mb"`
	UploadVideoMaxSizeMB    int    `mapstructure:"upload_video_max_size_mb"`
	UploadAllowedImageTypes string `mapstructure:"upload_allowed_image_types"`
	UploadAllowedVideoTypes string `mapstructure:"upload_allowed_video_types"`
	UploadMaxBatchFiles     int    `mapstructure:"upload_max_batch_files"`
	UploadMaxAssetsPerOwner int    `mapstructure:"upload_max_assets_per_owner"`

	// 限流配置
	RateLimitApiRPS     float64       `mapstructure:"rate_limit_api_rps"`
	RateLimitApiBurst   int           `mapstructure:"rate_limit_api_burst"`
	RateLimitMediaRPS   float64       `mapstructure:"rate_limit_media_rps"`
	RateLimitMediaBurst int           `mapstructure:"rate_limit_media_burst"`
	RateLimitAuthRPS    float64       `mapstructure:"rate_limit_auth_rps"`
	RateLimitAuthBurst  int           `mapstructure:"rate_limit_auth_burst"`
	RateLimitExpireTime time.Duration `mapstructure:"rate_limit_expire_time"`

	// JWT 配置
	JwtSecret           string        `mapstructure:"jwt_secret"`
	JwtExpiresIn        time.Duration `mapstructure:"jwt_expires_in"`
	JwtRefreshExpiresIn time.Duration `mapstructure:"jwt_refresh_expires_in"`
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}
}

// setDefaults 设置默认值
func setDefaults() {
	// 服务器配置默认值
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_domain", "")
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")

	// 数据库配置默认值
	viper.SetDefault("db_type", "sqlite")
	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "content-hub")
	viper.SetDefault("db_file_path", "")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)

	// 存储配置默认值
	viper.SetDefault("storage_type", "local")
	viper.SetDefault("storage_local_path", "./data/uploads")
	viper.SetDefault("storage_minio_endpoint", "")
	viper.SetDefault("storage_minio_access_key", "")
	viper.SetDefault("storage_minio_secret_key", "")
	viper.SetDefault("storage_minio_bucket", "content-hub")
	viper.SetDefault("storage_minio_use_ssl", true)
	viper.SetDefault("storage_webdav_url", "")
	viper.SetDefault("storage_webdav_user", "")
	viper.SetDefault("storage_webdav_password", "")
	viper.SetDefault("storage_webdav_root", "content-hub")

	// 缓存配置默认值
	viper.SetDefault("cache_type", "memory")
	viper.SetDefault("cache_asset_ttl", 3600)
	viper.SetDefault("cache_redis_addr", "localhost:6379")
	viper.SetDefault("cache_redis_password", "")
	viper.SetDefault("cache_redis_db", 0)

	// 上传策略默认值
	viper.SetDefault("upload_image_max_size_mb", 10)
	viper.SetDefault("upload_video_max_size_mb", 50)
	viper.SetDefault("upload_allowed_image_types", "image/jpeg,image/png,image/gif,image/webp")
	viper.SetDefault("upload_allowed_video_types", "video/mp4,video/webm,video/quicktime")
	viper.SetDefault("upload_max_batch_files", 10)
	viper.SetDefault("upload_max_assets_per_owner", 100)

	// 限流配置默认值
	viper.SetDefault("rate_limit_api_rps", 30.0)
	viper.SetDefault("rate_limit_api_burst", 60)
	viper.SetDefault("rate_limit_media_rps", 100.0)
	viper.SetDefault("rate_limit_media_burst", 200)
	viper.SetDefault("rate_limit_auth_rps", 0.5)
	viper.SetDefault("rate_limit_auth_burst", 5)
	viper.SetDefault("rate_limit_expire_time", "10m")

	// JWT 配置默认值
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("jwt_expires_in", "2h")
	viper.SetDefault("jwt_refresh_expires_in", "168h")
}

// Addr 返回监听地址，格式为 "host:port"
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// BaseURL 返回基础 URL，用于生成公开访问链接
func (c *Config) BaseURL() string {
	if c.ServerDomain != "" {
		return c.ServerDomain
	}
	host := c.ServerHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.ServerPort)
}

// AllowedImageTypes 返回允许的图片 MIME 类型列表
func (c *Config) AllowedImageTypes() []string {
	return splitTypes(c.UploadAllowedImageTypes)
}

// AllowedVideoTypes 返回允许的视频 MIME 类型列表
func (c *Config) AllowedVideoTypes() []string {
	return splitTypes(c.UploadAllowedVideoTypes)
}

func splitTypes(raw string) []string {
	parts := strings.Split(raw, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			types = append(types, p)
		}
	}
	return types
}
