// Package config defines the builder settings and helpers to load, validate
// and save them in YAML format.
//
// Every setting has a default that reproduces the stock dashboard build, so a
// missing settings file is not an error. Values from a .env file or the
// process environment override the file.
package config
