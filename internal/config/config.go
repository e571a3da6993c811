package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Search   SearchConfig
	Chat     ChatConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           string
	PublicURL      string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

// DatabaseConfig selects the bun dialect: "sqlite" (default) or "postgres".
type DatabaseConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
	Topics  TopicConfig
}

type TopicConfig struct {
	BookmarkToggled string
	ChatClassified  string
}

// SearchConfig holds hosted index credentials. Without an AppID the local backend is used.
type SearchConfig struct {
	AppID       string
	SearchKey   string
	AdminKey    string
	Index       string
	Host        string // replaces the default hosts, scheme optional
	Timeout     time.Duration
	HitsPerPage int
}

type ChatConfig struct {
	ResponseDelay time.Duration
	SessionTTL    time.Duration
}

type LogConfig struct {
	Dir   string
	Level string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", ":8080"),
			PublicURL:      getEnv("PUBLIC_URL", "http://localhost:3000"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   getEnvDuration("HTTP_WRITE_TIMEOUT", 0),
			IdleTimeout:    60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "sqlite"),
			DSN:          getEnv("DB_DSN", "file:eventmatch.db?cache=shared"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Topics: TopicConfig{
				BookmarkToggled: getEnv("KAFKA_TOPIC_BOOKMARKS", "eventmatch.bookmarks.toggled"),
				ChatClassified:  getEnv("KAFKA_TOPIC_CHAT", "eventmatch.chat.classified"),
			},
		},
		Search: SearchConfig{
			AppID:       getEnv("ALGOLIA_APP_ID", ""),
			SearchKey:   getEnv("ALGOLIA_SEARCH_KEY", ""),
			AdminKey:    getEnv("ALGOLIA_ADMIN_KEY", ""),
			Index:       getEnv("ALGOLIA_INDEX", "events"),
			Host:        getEnv("ALGOLIA_HOST", ""),
			Timeout:     getEnvDuration("ALGOLIA_TIMEOUT", 5*time.Second),
			HitsPerPage: getEnvInt("SEARCH_HITS_PER_PAGE", 20),
		},
		Chat: ChatConfig{
			ResponseDelay: getEnvDuration("CHAT_RESPONSE_DELAY", time.Second),
			SessionTTL:    getEnvDuration("CHAT_SESSION_TTL", 30*time.Minute),
		},
		Log: LogConfig{
			Dir:   getEnv("LOG_DIR", "logs"),
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}
}

// Hosted reports whether hosted search credentials are configured.
func (s SearchConfig) Hosted() bool {
	return s.AppID != "" && s.SearchKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
