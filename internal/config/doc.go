// Package config loads and validates logtap configuration.
//
// Configuration lives in a TOML file; every field has a default, so a
// missing file still yields a configuration that serves /var/log/logtap
// (validation fails when that directory does not exist). A .env file and LOGTAP_* environment variables overlay the file
// for containerized deployments. Validation happens once at load time so the
// rest of the program can trust the values it is handed.
package config
