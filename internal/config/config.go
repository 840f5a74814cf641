package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 服务运行配置
type Config struct {
	// --- 服务 ---
	AppEnv     string // development | production
	ServerPort string
	GinMode    string
	LogLevel   string

	// --- 数据库 ---
	DBDriver string // postgres | sqlite
	DBDSN    string

	// --- 选择流程 ---
	SessionTTL       time.Duration
	SessionSweepCron string
	PromptSoftAttrs  bool          // 引导流程是否询问深度/软硬度
	CartAddDebounce  time.Duration // 同一会话加购去抖

	// --- 购物车 ---
	CartStore        string // local | remote
	CartStoreURL     string
	CartStoreTimeout time.Duration

	// --- 图片存储 ---
	StorageProvider string // local | s3
	StorageBaseURL  string
	AWSBucket       string
	AWSRegion       string
	AWSAccessKey    string
	AWSSecretKey    string
	AWSCDNDomain    string
	ImageURLExpires time.Duration
}

// Load 读取 .env 与环境变量
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量与默认值")
	}

	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver: getEnv("DB_DRIVER", "postgres"),
		DBDSN:    getEnv("DB_DSN", "host=localhost user=sleepwell password=sleepwell dbname=sleepwell port=5432 sslmode=disable"),

		SessionTTL:       getDuration("SESSION_TTL", 30*time.Minute),
		SessionSweepCron: getEnv("SESSION_SWEEP_CRON", "0 */1 * * * *"),
		PromptSoftAttrs:  getBool("SELECTION_PROMPT_SOFT", true),
		CartAddDebounce:  getDuration("CART_ADD_DEBOUNCE", time.Second),

		CartStore:        getEnv("CART_STORE", "local"),
		CartStoreURL:     getEnv("CART_STORE_URL", ""),
		CartStoreTimeout: getDuration("CART_STORE_TIMEOUT", 5*time.Second),

		StorageProvider: getEnv("STORAGE_PROVIDER", "local"),
		StorageBaseURL:  getEnv("STORAGE_BASE_URL", ""),
		AWSBucket:       getEnv("AWS_BUCKET", ""),
		AWSRegion:       getEnv("AWS_REGION", ""),
		AWSAccessKey:    getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSCDNDomain:    getEnv("AWS_CDN_DOMAIN", ""),
		ImageURLExpires: getDuration("IMAGE_URL_EXPIRES", time.Hour),
	}
}

// IsProduction 生产环境
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("配置 %s 格式错误 (%q)，使用默认值 %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("配置 %s 格式错误 (%q)，使用默认值 %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}
