// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Modules depend on the Config interface; the application builds it with
// NewViper from a YAML file, overridden by environment variables (optionally
// loaded from a .env file) and backed by registered defaults.
//
// Binary values such as the session secret are read as base64.
package pkgconfig
