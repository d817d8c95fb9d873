// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the gateway's settings while keeping configuration
// details separate from the translation logic.
package config
