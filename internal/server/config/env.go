package config

import "github.com/dmitrijs2005/gophauth/internal/flagx"

const (
	addrEnvVar        = "AUTH_ADDR"
	dbDriverEnvVar    = "AUTH_DB_DRIVER"
	dbDSNEnvVar       = "AUTH_DB_DSN"
	jwtSecretEnvVar   = "AUTH_JWT_SECRET"
	corsOriginsEnvVar = "AUTH_CORS_ORIGINS"
	logLevelEnvVar    = "AUTH_LOG_LEVEL"
)

type lookupFunc func(key string) (string, bool)

// parseEnv overlays non-empty environment variables.
func parseEnv(config *Config, lookup lookupFunc) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	setString(&config.EndpointAddrHTTP, get(addrEnvVar))
	setString(&config.DatabaseDriver, get(dbDriverEnvVar))
	setString(&config.DatabaseDSN, get(dbDSNEnvVar))
	setString(&config.SecretKey, get(jwtSecretEnvVar))
	setString(&config.LogLevel, get(logLevelEnvVar))

	if v := get(corsOriginsEnvVar); v != "" {
		config.CORSAllowedOrigins = flagx.SplitList(v)
	}
}
