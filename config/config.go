package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. Values come from the environment,
// optionally pre-populated from a .env file in the working directory.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"nutrismart"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"nutrismart.db"`

	AuthMode  string        `envconfig:"AUTH_MODE" default:"jwt"`
	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"72h"`

	VisionProvider      string  `envconfig:"VISION_PROVIDER" default:"llm"`
	VisionBaseURL       string  `envconfig:"VISION_BASE_URL" default:"https://openrouter.ai/api/v1"`
	VisionAPIKey        string  `envconfig:"VISION_API_KEY"`
	VisionModel         string  `envconfig:"VISION_MODEL" default:"google/gemini-2.0-flash-001"`
	VisionTemperature   float64 `envconfig:"VISION_TEMPERATURE" default:"0.2"`
	VisionMaxTokens     int     `envconfig:"VISION_MAX_TOKENS" default:"4096"`
	VisionMaxImageBytes int64   `envconfig:"VISION_MAX_IMAGE_BYTES" default:"10485760"`

	AWSRegion      string `envconfig:"AWS_REGION" default:"us-east-1"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3PublicURL    string `envconfig:"S3_PUBLIC_URL"`
	SNSPlatformARN string `envconfig:"SNS_PLATFORM_ARN"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is fine outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes the enumerated settings and rejects unknown values.
func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	c.AuthMode = strings.ToLower(strings.TrimSpace(c.AuthMode))
	switch c.AuthMode {
	case "jwt":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case "fake":
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", c.AuthMode)
	}

	c.VisionProvider = strings.ToLower(strings.TrimSpace(c.VisionProvider))
	switch c.VisionProvider {
	case "llm", "rekognition", "none":
	default:
		return fmt.Errorf("unsupported VISION_PROVIDER: %s", c.VisionProvider)
	}

	if c.VisionMaxImageBytes <= 0 {
		return fmt.Errorf("VISION_MAX_IMAGE_BYTES must be positive")
	}
	return nil
}

// PostgresDSN builds the key/value DSN understood by the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}
