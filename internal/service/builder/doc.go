// Package builder runs the dashboard build pipeline.
//
// The stages run strictly in order: environment probe, manifest patch, static
// bundle, Linux package. The first failing stage stops the run, and the
// report is printed either way.
package builder
