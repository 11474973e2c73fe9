package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config schoolform 服务配置（capture 服务与 sink API 共用）
type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Data   DataConfig
	Sink   SinkConfig
	Outbox struct {
		Path string
	}
	Cache struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	}
	Database DatabaseConfig
}

// DataConfig 静态数据集路径（启动时加载一次，运行期只读）
type DataConfig struct {
	SchoolsFile   string // reference dataset, .csv or .xlsx
	LocationsFile string // canonical Region/Province/Municipality/Barangay JSON
}

// SinkConfig 远端提交服务配置
type SinkConfig struct {
	BaseURL  string
	SavePath string
	Timeout  time.Duration
}

// DatabaseConfig sink 侧 PostgreSQL 配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Data.SchoolsFile = getEnv("SCHOOLS_FILE", "data/schools.csv")
	cfg.Data.LocationsFile = getEnv("LOCATIONS_FILE", "data/locations.json")

	cfg.Sink.BaseURL = getEnv("SINK_BASE_URL", "http://localhost:3000")
	cfg.Sink.SavePath = getEnv("SINK_SAVE_PATH", "/api/save-school")
	cfg.Sink.Timeout = time.Duration(parseInt(getEnv("SINK_TIMEOUT_SECONDS", "30"), 30)) * time.Second

	cfg.Outbox.Path = getEnv("OUTBOX_PATH", "data/outbox.db")

	// Autofill cache is optional: without Redis the service just re-scans the
	// in-memory dataset on every lookup.
	cfg.Cache.Enabled = getEnv("CACHE_ENABLED", "false") == "true"
	cfg.Cache.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Cache.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Cache.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.Cache.TTL = time.Duration(parseInt(getEnv("CACHE_TTL_SECONDS", "3600"), 3600)) * time.Second

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "schoolform")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "0"), 0)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "0"), 0)

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
