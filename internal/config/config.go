package config

import (
	"os"
	"strconv"
	"time"
)

// Config safetynet-alerts（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	// DataFile 唯一的 JSON 数据文件（系统记录源）
	DataFile string
	Log      struct {
		Level  string
		Format string
	}
	// Cache 视图缓存：默认进程内存；启用 Redis 后走外部缓存
	Cache struct {
		Enabled      bool
		RedisEnabled bool
		TTL          time.Duration
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.DataFile = getEnv("DATA_FILE", "./data/data.json")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Cache.Enabled = getEnv("CACHE_ENABLED", "true") == "true"
	cfg.Cache.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	// 年龄按当天推导，缓存必须短于一天
	cfg.Cache.TTL = time.Duration(parseInt(getEnv("CACHE_TTL_SECONDS", "900"), 900)) * time.Second

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
