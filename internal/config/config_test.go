package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHAT_RESPONSE_DELAY", "")
	t.Setenv("ALGOLIA_APP_ID", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, time.Second, cfg.Chat.ResponseDelay)
	assert.Equal(t, 20, cfg.Search.HitsPerPage)
	assert.False(t, cfg.Search.Hosted())
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHAT_RESPONSE_DELAY", "250ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("ALGOLIA_APP_ID", "APP")
	t.Setenv("ALGOLIA_SEARCH_KEY", "key")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ResponseDelay)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled)
	assert.True(t, cfg.Search.Hosted())
	assert.Equal(t, 0, cfg.Redis.DB)
}
