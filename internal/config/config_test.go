package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newValidConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, Mode: "debug"},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, DBName: "sbgnqual", MaxConns: 10},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Kafka:    KafkaConfig{Brokers: []string{"localhost:9092"}, GroupID: "sbgnqual-worker"},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	t.Parallel()
	assert.NoError(t, newValidConfig().Validate())
}

func TestConfig_Validate_BadServerPort(t *testing.T) {
	t.Parallel()
	cfg := newValidConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_BadServerMode(t *testing.T) {
	t.Parallel()
	cfg := newValidConfig()
	cfg.Server.Mode = "turbo"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_MissingDBHost(t *testing.T) {
	t.Parallel()
	cfg := newValidConfig()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_NoKafkaBrokers(t *testing.T) {
	t.Parallel()
	cfg := newValidConfig()
	cfg.Kafka.Brokers = nil
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_BadLogLevel(t *testing.T) {
	t.Parallel()
	cfg := newValidConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())
}
