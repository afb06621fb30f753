// Package config loads and merges revsent configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (REVSENT_PROVIDER, REVSENT_REVIEWS_FILE, HF_TOKEN, etc.)
//  3. Config file ($XDG_CONFIG_HOME/revsent/config.json)
//  4. Built-in defaults
//
// A .env file in the working directory is read by [LoadDotEnv] before the
// environment is consulted. The API token is never written to the config file.
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file, and
// [SetField] to update a single key.
package config
