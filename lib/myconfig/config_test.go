package myconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("CHECKOUT_EXPIRY_MINUTES", "")
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("DEMO_TENANT_PLATFORM", "")

		config := Load(filepath.Join(t.TempDir(), "missing.env"))

		assert.Equal(t, "8080", config.Port)
		assert.Equal(t, 30, config.CheckoutExpiryMinutes)
		assert.Empty(t, config.KafkaBrokers)
		assert.Equal(t, "CUSTOM", config.DemoTenant.Platform)
	})

	t.Run("From environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("CHECKOUT_EXPIRY_MINUTES", "5")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

		config := Load(filepath.Join(t.TempDir(), "missing.env"))

		assert.Equal(t, "9090", config.Port)
		assert.Equal(t, 5, config.CheckoutExpiryMinutes)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.KafkaBrokers)
	})

	t.Run("From env file", func(t *testing.T) {
		t.Setenv("DEMO_TENANT_NAME", "")
		os.Unsetenv("DEMO_TENANT_NAME")
		envFile := filepath.Join(t.TempDir(), "test.env")
		err := os.WriteFile(envFile, []byte("DEMO_TENANT_NAME=File Store\n"), 0o600)
		assert.NoError(t, err)
		defer os.Unsetenv("DEMO_TENANT_NAME")

		config := Load(envFile)

		assert.Equal(t, "File Store", config.DemoTenant.Name)
	})
}
