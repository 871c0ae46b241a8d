package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DBPath            string
	Network           string
	AllowedOrigins    []string
	MinDonationUSD    float64
	MaxDonationUSD    float64
	MaxMessageLength  int
	GeoIPDBPath       string
	SeedMockStreamers bool
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	RateLimitPerMin   int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "./data/donations.db"),
		Network:           getEnv("NETWORK", "base-sepolia"),
		AllowedOrigins:    splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8000")),
		MinDonationUSD:    getEnvFloat("MIN_DONATION_USD", 0.01),
		MaxDonationUSD:    getEnvFloat("MAX_DONATION_USD", 1000.0),
		MaxMessageLength:  getEnvInt("MAX_MESSAGE_LENGTH", 200),
		GeoIPDBPath:       os.Getenv("GEOIP_DB_PATH"),
		SeedMockStreamers: getEnvBool("SEED_MOCK_STREAMERS", true),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}

	if cfg.MinDonationUSD <= 0 {
		return nil, fmt.Errorf("MIN_DONATION_USD must be positive, got %v", cfg.MinDonationUSD)
	}

	if cfg.MaxDonationUSD <= cfg.MinDonationUSD {
		return nil, fmt.Errorf("MAX_DONATION_USD (%v) must exceed MIN_DONATION_USD (%v)", cfg.MaxDonationUSD, cfg.MinDonationUSD)
	}

	if cfg.MaxMessageLength <= 0 {
		return nil, fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", cfg.MaxMessageLength)
	}

	return cfg, nil
}

// IsTestnet reports whether the configured network is a test network.
func (c *Config) IsTestnet() bool {
	network := strings.ToLower(c.Network)
	return strings.Contains(network, "sepolia") || strings.Contains(network, "test")
}

// ChainID returns the Base chain ID for the configured network.
func (c *Config) ChainID() int {
	if c.IsTestnet() {
		return 84532 // Base Sepolia
	}
	return 8453 // Base Mainnet
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
