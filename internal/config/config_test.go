package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "spaces and blanks", in: " a:1 , ,b:2,", want: []string{"a:1", "b:2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSV(tt.in))
		})
	}
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("GROCERY_TEST_INT", "42")
	assert.Equal(t, 42, EnvIntDefault("GROCERY_TEST_INT", 7))

	t.Setenv("GROCERY_TEST_INT", "forty")
	assert.Equal(t, 7, EnvIntDefault("GROCERY_TEST_INT", 7))

	t.Setenv("GROCERY_TEST_INT", "-3")
	assert.Equal(t, 7, EnvIntDefault("GROCERY_TEST_INT", 7))

	assert.Equal(t, 7, EnvIntDefault("GROCERY_TEST_UNSET", 7))
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "DB_DRIVER", "KAFKA_BROKERS", "CART_TOPIC", "ES_INDEX", "SEARCH_LIMIT", "CURRENCY", "RATE_LIMIT"} {
		t.Setenv(k, "")
	}
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "grocery", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "cart_events", cfg.CartTopic)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, currency.RUB, cfg.Currency)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.Equal(t, []byte("secret"), cfg.JWTAccessSecret)
}

func TestLoadRejectsUnknownCurrency(t *testing.T) {
	t.Setenv("CURRENCY", "XYZW")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CURRENCY", "eur")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, currency.EUR, cfg.Currency)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}
