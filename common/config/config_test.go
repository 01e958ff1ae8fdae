package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("CHI_DB_HOST", "pg.internal")
	t.Setenv("CHI_DB_PORT", "6543")
	t.Setenv("CHI_DB_NAME", "mindtrack")
	t.Setenv("CHI_DB_MAX_CONNS", "not-a-number")

	cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", SSLMode: "disable", MaxConns: 4}
	cfg.LoadFromEnv("CHI_DB")

	assert.Equal(t, "pg.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, "postgres", cfg.User)
	assert.Equal(t, "mindtrack", cfg.Database)
	assert.Equal(t, 4, cfg.MaxConns)
	assert.Equal(t, "host=pg.internal port=6543 user=postgres password= dbname=mindtrack sslmode=disable", cfg.GetDSN())
}

func TestMQTTConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("CHI_MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("CHI_MQTT_TOPIC", "mindtrack/alerts")
	t.Setenv("CHI_MQTT_QOS", "7")

	cfg := MQTTConfig{ClientID: "chi", QoS: 1}
	cfg.LoadFromEnv("CHI_MQTT")

	assert.Equal(t, "tcp://broker:1883", cfg.Broker)
	assert.Equal(t, "chi", cfg.ClientID)
	assert.Equal(t, "mindtrack/alerts", cfg.Topic)
	// 超出范围的 QoS 被忽略
	assert.Equal(t, byte(1), cfg.QoS)
}

func TestRedisConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("CHI_REDIS_ADDR", "cache:6380")
	t.Setenv("CHI_REDIS_DB", "3")

	cfg := RedisConfig{Addr: "localhost:6379"}
	cfg.LoadFromEnv("CHI_REDIS")

	assert.Equal(t, "cache:6380", cfg.Addr)
	assert.Equal(t, 3, cfg.DB)
}
