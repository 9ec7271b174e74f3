// Package config defines the application configuration structure and the
// logic to load it from environment variables and config files.
package config
