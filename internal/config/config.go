package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig holds the payroll engine policy switches. Both policies
// default to the values the plant has been running with.
type EngineConfig struct {
	NonWorkingPolicy string
	LeavePolicy      string
	OvertimeCredit   bool
}

func Load() (*Config, error) {
	// A missing .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timepay"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Engine policy configuration
	overtimeCredit, err := strconv.ParseBool(getEnv("ENGINE_OVERTIME_CREDIT", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_OVERTIME_CREDIT: %w", err)
	}

	config.Engine = EngineConfig{
		NonWorkingPolicy: getEnv("ENGINE_NON_WORKING_POLICY", string(shift.NonWorkingReportPending)),
		LeavePolicy:      getEnv("ENGINE_LEAVE_POLICY", string(shift.LeaveAsDeduction)),
		OvertimeCredit:   overtimeCredit,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch shift.NonWorkingPolicy(c.Engine.NonWorkingPolicy) {
	case shift.NonWorkingReportPending, shift.NonWorkingZeroFill:
	default:
		return fmt.Errorf("invalid ENGINE_NON_WORKING_POLICY: %q", c.Engine.NonWorkingPolicy)
	}
	switch shift.LeavePolicy(c.Engine.LeavePolicy) {
	case shift.LeaveAsDeduction, shift.LeaveAsPayableDay:
	default:
		return fmt.Errorf("invalid ENGINE_LEAVE_POLICY: %q", c.Engine.LeavePolicy)
	}
	return nil
}

// Rules builds the engine rule set from the defaults plus the
// configured policy switches.
func (c *Config) Rules() shift.Rules {
	rules := shift.DefaultRules()
	rules.NonWorkingPolicy = shift.NonWorkingPolicy(c.Engine.NonWorkingPolicy)
	rules.LeavePolicy = shift.LeavePolicy(c.Engine.LeavePolicy)
	rules.OvertimeCredit = c.Engine.OvertimeCredit
	return rules
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
