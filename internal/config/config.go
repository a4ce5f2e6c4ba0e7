package config

import (
	"os"
	"strconv"
)

// Config facility-readings 服务配置
type Config struct {
	HTTP struct {
		Addr string
	}
	// RedisEnabled 为 false 时使用内存 KV（本地开发/联调）
	RedisEnabled bool
	Redis        struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	// Notifier webhook 配置（URL 为空则不发通知）
	Notifier struct {
		WebhookURL string
	}
	// Policy 提交策略
	Policy struct {
		// AllowAdHocPoints 是否允许不选清单的单点提交
		AllowAdHocPoints bool
	}
	// Seed 启动引导账号（仅开发环境）
	Seed struct {
		SuperAdmin bool
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to false for local dev: without Redis the service still runs on the in-memory KV.
	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Notifier.WebhookURL = getEnv("NOTIFIER_WEBHOOK_URL", "")

	cfg.Policy.AllowAdHocPoints = getEnv("ALLOW_ADHOC_POINTS", "true") == "true"

	cfg.Seed.SuperAdmin = getEnv("SEED_SUPERADMIN", "true") == "true"

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
