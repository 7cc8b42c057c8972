// Package integration runs the whole build pipeline end to end against a
// temporary project and a fake Node.js toolchain.
package integration
