package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

type Config struct {
	ServiceName string

	ServerPort int

	DBDriver    string
	DatabaseURL string

	JWTAccessSecret []byte

	KafkaBrokers []string
	CartTopic    string

	ESURL       string
	ESUser      string
	ESPassword  string
	ESIndex     string
	SearchLimit int

	Currency  currency.Unit
	RateLimit int
	LogLevel  string
}

func Load() (Config, error) {
	cur, err := currency.ParseISO(EnvDefault("CURRENCY", "RUB"))
	if err != nil {
		return Config{}, fmt.Errorf("CURRENCY: %w", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "grocery"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DBDriver:    EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		CartTopic:    EnvDefault("CART_TOPIC", "cart_events"),

		ESURL:       os.Getenv("ES_URL"),
		ESUser:      os.Getenv("ES_USER"),
		ESPassword:  os.Getenv("ES_PASSWORD"),
		ESIndex:     EnvDefault("ES_INDEX", "products"),
		SearchLimit: EnvIntDefault("SEARCH_LIMIT", 20),

		Currency:  cur,
		RateLimit: EnvIntDefault("RATE_LIMIT", 20),
		LogLevel:  os.Getenv("LOG_LEVEL"),
	}, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvIntDefault falls back to def when the value is unset, malformed or not positive.
func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
