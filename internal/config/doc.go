// Package config loads interplist settings.
//
// Values are resolved in three layers: built-in defaults, an optional TOML
// file, then INTERPLIST_* environment variables. Environment variables
// that are unset leave the earlier layers untouched.
package config
