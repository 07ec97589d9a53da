// Package config provides the typed application settings and their loading.
//
// Settings are read from a YAML file through viper, may be overridden by
// BOUNDLESS_RSA_ prefixed environment variables and are checked with
// go-playground/validator before use.
package config
