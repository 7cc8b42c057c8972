// Package linuxpkg turns the staging directory into a single-folder Linux
// bundle: the application directory with its launcher, a desktop entry, an
// install script and a README.
//
// The generated files have fixed contents and install the dashboard under
// /opt/ai-scraper-dashboard. Nothing is rolled back when a write fails.
package linuxpkg
