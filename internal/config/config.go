package config

import (
	"os"
	"strconv"
	"time"

	"mindtrack-chi/common/config"
)

// Config CHI 服务配置
type Config struct {
	HTTP struct {
		Addr string
	}

	Database config.DatabaseConfig
	Redis    config.RedisConfig
	MQTT     config.MQTTConfig

	// 可选基础设施开关
	RedisEnabled bool
	DBEnabled    bool
	MQTTEnabled  bool

	CHI struct {
		Weights     string // 如 "sleep=35,biometric=25,facial=20,voice=15,behavioral=5"
		Concurrency int    // 周 / 月聚合的并发日数
		Cache       struct {
			Prefix string // 状态快照缓存键前缀，如 "chi:state:"
			TTL    int    // 秒
		}
	}

	Monitor struct {
		Enabled  bool
		Interval int    // 轮询间隔（秒）
		Stream   string // 告警 Redis Stream
	}

	Log struct {
		Level       string
		Format      string
		ServiceName string
	}
}

// CacheTTL 状态快照缓存过期时间
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CHI.Cache.TTL) * time.Second
}

// MonitorInterval 监控轮询间隔
func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.Monitor.Interval) * time.Second
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// 数据库（规则告警日志）
	cfg.DBEnabled = getEnvBool("DB_ENABLED", false)
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "mindtrack"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxConns = 10
	cfg.Database.MaxIdle = 2
	cfg.Database.LoadFromEnv("DB")

	// Redis（状态快照缓存 + 告警流）
	cfg.RedisEnabled = getEnvBool("REDIS_ENABLED", false)
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.LoadFromEnv("REDIS")

	// MQTT（告警推送）
	cfg.MQTTEnabled = getEnvBool("MQTT_ENABLED", false)
	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "mindtrack-chi"
	cfg.MQTT.Topic = "mindtrack/chi/alerts"
	cfg.MQTT.QoS = 1
	cfg.MQTT.LoadFromEnv("MQTT")

	cfg.CHI.Weights = getEnv("CHI_WEIGHTS", "")
	cfg.CHI.Concurrency = getEnvInt("CHI_AGGREGATION_CONCURRENCY", 8)
	cfg.CHI.Cache.Prefix = getEnv("CHI_CACHE_PREFIX", "chi:state:")
	cfg.CHI.Cache.TTL = getEnvInt("CHI_CACHE_TTL", 3600)

	cfg.Monitor.Enabled = getEnvBool("MONITOR_ENABLED", false)
	cfg.Monitor.Interval = getEnvInt("MONITOR_INTERVAL", 300)
	cfg.Monitor.Stream = getEnv("ALERT_STREAM", "chi:alerts")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	cfg.Log.ServiceName = getEnv("SERVICE_NAME", "mindtrack-chi")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
