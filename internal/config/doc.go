// Package config loads gitpilot CLI settings.
//
// Values are layered with viper: built-in defaults, then
// ~/.config/gitpilot/config.yaml (or an explicit --config file), then
// GITPILOT_* environment variables, then command-line flags.
package config
