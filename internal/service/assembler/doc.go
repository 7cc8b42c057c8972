// Package assembler fills the staging directory: it merges the essential
// project entries into it and drops the static status page next to them.
package assembler
