// Package config loads application settings from the environment.
//
// On first use the package reads a .env file from the working directory
// (github.com/joho/godotenv) without overriding variables that are already
// set. Structs are then populated from their `env` tags with
// github.com/caarlos0/env/v11:
//
//	var cfg database.Config
//	config.MustLoad(&cfg)
//
// Env, EnvInt and EnvBool read single variables with a fallback:
//
//	addr := config.Env("HTTP_ADDR", ":8080")
//
// LoadFiles reads additional env files, e.g. per-environment overrides.
package config
