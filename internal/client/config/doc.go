// Package config loads runtime configuration for the kioskadmin console.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. KIOSKADMIN_* environment variables.
//  4. Command-line flags.
//
// Flags
//
//	-a string     backend API base URL
//	-d string     local session database path
//	-t duration   HTTP request timeout
//	-i int        online status check interval (seconds)
//	-l string     log level
//	-r            wipe the saved session and store salt before start
//
// Environment
//
//	KIOSKADMIN_API_URL, KIOSKADMIN_DB, KIOSKADMIN_REQUEST_TIMEOUT,
//	KIOSKADMIN_ONLINE_CHECK_INTERVAL, KIOSKADMIN_HEALTH_PATH,
//	KIOSKADMIN_LOG_LEVEL, KIOSKADMIN_STORE_KEY, KIOSKADMIN_RESET_LOCAL
//
// # JSON schema
//
// Durations are timex.Duration values, either strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "database_path": "kioskadmin.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "10s",
//	  "health_path": "/health",
//	  "log_level": "info"
//	}
package config
