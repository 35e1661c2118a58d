package myconfig

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	GoogleCloudProject    string
	DatabaseURL           string
	RedisURL              string
	KafkaBrokers          []string
	EncryptionKey         string
	CheckoutExpiryMinutes int
	PublicBaseURL         string
	DemoTenant            DemoTenant
}

// DemoTenant is provisioned at startup so the gateway is usable without onboarding.
type DemoTenant struct {
	Name     string
	APIKey   string
	Platform string
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return Config{
		Port:                  getEnv("PORT", "8080"),
		GoogleCloudProject:    os.Getenv("GOOGLE_CLOUD_PROJECT"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisURL:              os.Getenv("REDIS_URL"),
		KafkaBrokers:          splitList(os.Getenv("KAFKA_BROKERS")),
		EncryptionKey:         os.Getenv("ENCRYPTION_KEY"),
		CheckoutExpiryMinutes: getEnvInt("CHECKOUT_EXPIRY_MINUTES", 30),
		PublicBaseURL:         os.Getenv("PUBLIC_BASE_URL"),
		DemoTenant: DemoTenant{
			Name:     getEnv("DEMO_TENANT_NAME", "Demo Store"),
			APIKey:   os.Getenv("DEMO_TENANT_API_KEY"),
			Platform: getEnv("DEMO_TENANT_PLATFORM", "CUSTOM"),
		},
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
