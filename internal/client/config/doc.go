// Package config loads runtime configuration for the auth CLI.
//
// Sources, later ones winning: built-in defaults, the JSON file named by -c
// or -config, the -a (server URL) and -t (timeout, seconds) flags, and the
// AUTH_SERVER_URL environment variable.
//
//	{
//	  "server_url": "http://localhost:3001",
//	  "request_timeout": "10s"
//	}
package config
