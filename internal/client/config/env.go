package config

import "strings"

const serverURLEnvVar = "AUTH_SERVER_URL"

type lookupFunc func(key string) (string, bool)

// parseEnv lets AUTH_SERVER_URL override every other source.
func parseEnv(cfg *Config, lookup lookupFunc) {
	if v, _ := lookup(serverURLEnvVar); strings.TrimSpace(v) != "" {
		cfg.ServerURL = strings.TrimSpace(v)
	}
}
