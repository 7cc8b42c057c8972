// Package fsutil provides the copy and write helpers used to assemble the
// staging directory and the Linux package.
package fsutil
