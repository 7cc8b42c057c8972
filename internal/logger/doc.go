// Package logger wraps zap for the builder:
//   - a global sugared logger writing console lines to stdout,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and switching for the --log-level flag,
//   - leveled shortcuts (Infof, InfoKV, ErrorKV, etc.).
//
// Every stage takes a context and logs through it, so names and key-value
// pairs attached by the pipeline show up on each stage line.
package logger
