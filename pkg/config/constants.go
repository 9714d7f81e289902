package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "CRUNCHPERKS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "CRUNCHPERKS_APP_ENV"
	EnvPort   = "CRUNCHPERKS_APP_PORT"
	EnvDBDSN  = "CRUNCHPERKS_DB_DSN"
	EnvDBHost = "CRUNCHPERKS_DB_HOST"
	EnvDBUser = "CRUNCHPERKS_DB_USER"
	EnvDBName = "CRUNCHPERKS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
