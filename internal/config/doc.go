// Package config loads and validates the TOML configuration controlling
// external tool invocation, probe caching, logging, and pre-run analysis.
package config
