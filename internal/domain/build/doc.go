// Package build holds the domain model of a dashboard build: the version pin
// table, the order-preserving manifest document, the directory layout and the
// per-stage results collected by the pipeline.
package build
