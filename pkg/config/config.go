package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	AI           AIConfig
	Billing      BillingConfig
	Email        EmailConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AUTORECURSO_APP_ENV" required:"true"`
	Port         string `envconfig:"AUTORECURSO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AUTORECURSO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AUTORECURSO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"AUTORECURSO_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"AUTORECURSO_DB_DSN" default:"autorecurso.db"`

	MaxOpenConns    int           `envconfig:"AUTORECURSO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AUTORECURSO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AUTORECURSO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AUTORECURSO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type AIConfig struct {
	APIKey         string        `envconfig:"AUTORECURSO_GEMINI_API_KEY"`
	Model          string        `envconfig:"AUTORECURSO_GEMINI_MODEL" default:"gemini-3-flash-preview"`
	BaseURL        string        `envconfig:"AUTORECURSO_GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	RetryAttempts  int           `envconfig:"AUTORECURSO_GEMINI_RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"AUTORECURSO_GEMINI_RETRY_BASE_DELAY" default:"2s"`
	RequestTimeout time.Duration `envconfig:"AUTORECURSO_GEMINI_REQUEST_TIMEOUT" default:"120s"`
}

type BillingConfig struct {
	APIKey        string `envconfig:"AUTORECURSO_ABACATEPAY_API_KEY"`
	BaseURL       string `envconfig:"AUTORECURSO_ABACATEPAY_BASE_URL" default:"https://api.abacatepay.com"`
	PriceCents    int    `envconfig:"AUTORECURSO_BILLING_PRICE_CENTS" default:"2490"`
	ReturnURL     string `envconfig:"AUTORECURSO_BILLING_RETURN_URL" default:"https://autorecurso.online"`
	CompletionURL string `envconfig:"AUTORECURSO_BILLING_COMPLETION_URL" default:"https://autorecurso.online/?success=true"`
}

// DevMode reports whether the configured key is an AbacatePay sandbox key.
func (b BillingConfig) DevMode() bool {
	return strings.HasPrefix(b.APIKey, "abc_dev_")
}

type EmailConfig struct {
	APIKey      string `envconfig:"AUTORECURSO_BREVO_API_KEY"`
	BaseURL     string `envconfig:"AUTORECURSO_BREVO_BASE_URL" default:"https://api.brevo.com"`
	SenderName  string `envconfig:"AUTORECURSO_EMAIL_SENDER_NAME" default:"AUTO RECURSO"`
	SenderEmail string `envconfig:"AUTORECURSO_EMAIL_SENDER_EMAIL" default:"contato@autorecurso.online"`
}

type AdminConfig struct {
	Password string `envconfig:"AUTORECURSO_ADMIN_PASSWORD" required:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AUTORECURSO_AUTO_MIGRATE" default:"false"`
}
