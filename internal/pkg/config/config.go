package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Fulfillment FulfillmentConfig
	Email       EmailConfig
	GitHub      GitHubConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Fulfillment-Secret"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// FulfillmentConfig carries the values the orchestrator reads per request.
// Injected explicitly rather than looked up from the process environment.
type FulfillmentConfig struct {
	AppBaseURL   string `envconfig:"APP_BASE_URL" required:"true"`
	SharedSecret string `envconfig:"FULFILLMENT_SHARED_SECRET" required:"true"`
}

type EmailConfig struct {
	APIBaseURL  string        `envconfig:"EMAIL_API_BASE_URL" default:"https://api.resend.com"`
	APIKey      string        `envconfig:"EMAIL_API_KEY" required:"true"`
	FromAddress string        `envconfig:"EMAIL_FROM_ADDRESS" default:"delivery@templatehub.dev"`
	Timeout     time.Duration `envconfig:"EMAIL_TIMEOUT" default:"10s"`
}

type GitHubConfig struct {
	APIBaseURL         string        `envconfig:"GITHUB_API_BASE_URL" default:"https://api.github.com"`
	Token              string        `envconfig:"GITHUB_TOKEN" required:"true"`
	Org                string        `envconfig:"GITHUB_ORG" required:"true"`
	ProTeamSlug        string        `envconfig:"GITHUB_PRO_TEAM_SLUG" default:"template-pro"`
	EnterpriseTeamSlug string        `envconfig:"GITHUB_ENTERPRISE_TEAM_SLUG" default:"template-enterprise"`
	Timeout            time.Duration `envconfig:"GITHUB_TIMEOUT" default:"15s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// TeamSlugFor returns the org team for a paid tier; empty for tiers without
// repository access.
func (c *GitHubConfig) TeamSlugFor(pkg string) string {
	switch pkg {
	case "pro":
		return c.ProTeamSlug
	case "enterprise":
		return c.EnterpriseTeamSlug
	default:
		return ""
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Fulfillment-Secret"},
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret-key-for-tests",
			Duration: "24h",
		},
		Fulfillment: FulfillmentConfig{
			AppBaseURL:   "http://localhost:3000",
			SharedSecret: "test-fulfillment-secret",
		},
		Email: EmailConfig{
			APIBaseURL:  "http://localhost:18080",
			APIKey:      "test-email-key",
			FromAddress: "delivery@templatehub.test",
			Timeout:     2 * time.Second,
		},
		GitHub: GitHubConfig{
			APIBaseURL:         "http://localhost:18081",
			Token:              "test-github-token",
			Org:                "templatehub-test",
			ProTeamSlug:        "template-pro",
			EnterpriseTeamSlug: "template-enterprise",
			Timeout:            2 * time.Second,
		},
	}
}
