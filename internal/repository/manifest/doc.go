// Package manifest reads and writes the dashboard package.json.
//
// The file is decoded into an order-preserving build.Manifest so that a
// patched manifest differs from the original only in the pinned values and in
// indentation. Writes replace the file atomically through go-update.
package manifest
