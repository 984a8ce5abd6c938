package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	DataEncryptionKey  string
	Environment        string
	MigrationsDir      string
	RunMigrations      bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
	WorkDaysPerMonth   int
	WorkHoursPerDay    int
	SocialTaxRate      float64
	INPSTaxRate        float64
	PayrollWorkers     int
	Currency           string
	ReportLocale       string
	RunSeed            bool
}

// Load reads the process environment. A .env file in the working directory is
// applied first when present; variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:        getEnv("APP_ENV", "development"),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 10<<20)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		WorkDaysPerMonth:   getEnvInt("WORK_DAYS_PER_MONTH", 22),
		WorkHoursPerDay:    getEnvInt("WORK_HOURS_PER_DAY", 8),
		SocialTaxRate:      getEnvFloat("SOCIAL_TAX_RATE", 12),
		INPSTaxRate:        getEnvFloat("INPS_TAX_RATE", 1),
		PayrollWorkers:     getEnvInt("PAYROLL_WORKERS", 4),
		Currency:           getEnv("CURRENCY", "UZS"),
		ReportLocale:       getEnv("REPORT_LOCALE", "en"),
		RunSeed:            getEnvBool("RUN_SEED", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.Environment == "production" && strings.TrimSpace(c.DatabaseURL) != "" {
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.WorkDaysPerMonth <= 0 {
		return fmt.Errorf("WORK_DAYS_PER_MONTH must be positive")
	}
	if c.WorkHoursPerDay <= 0 {
		return fmt.Errorf("WORK_HOURS_PER_DAY must be positive")
	}
	if c.SocialTaxRate < 0 || c.SocialTaxRate > 100 {
		return fmt.Errorf("SOCIAL_TAX_RATE must be between 0 and 100")
	}
	if c.INPSTaxRate < 0 || c.INPSTaxRate > 100 {
		return fmt.Errorf("INPS_TAX_RATE must be between 0 and 100")
	}
	if c.PayrollWorkers <= 0 {
		return fmt.Errorf("PAYROLL_WORKERS must be positive")
	}
	return nil
}
