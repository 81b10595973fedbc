// Package config loads runtime configuration for the topology resolver from
// CLI flags and environment variables with precedence: CLI flags >
// Environment variables > Defaults. It exposes strongly typed settings to the
// rest of the application.
package config
