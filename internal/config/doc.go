// Package config loads kjvparse settings from TOML. Every setting has a
// default matching the Project Gutenberg King James Bible, so a missing
// configuration file is not an error.
package config
