package config

const EnvPrefix = "AUTORECURSO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv        = "AUTORECURSO_APP_ENV"
	EnvPort          = "AUTORECURSO_APP_PORT"
	EnvDBDSN         = "AUTORECURSO_DB_DSN"
	EnvDBDriver      = "AUTORECURSO_DB_DRIVER"
	EnvAIAPIKey      = "AUTORECURSO_GEMINI_API_KEY"
	EnvBillingAPIKey = "AUTORECURSO_ABACATEPAY_API_KEY"
	EnvEmailAPIKey   = "AUTORECURSO_BREVO_API_KEY"
	EnvAdminPassword = "AUTORECURSO_ADMIN_PASSWORD"
)
