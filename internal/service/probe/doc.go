// Package probe checks that the Node.js toolchain is installed before the
// build touches any file.
//
// Each configured tool is asked for its version; the first tool that fails
// aborts the probe, and its entry in the status record becomes FAIL.
package probe
