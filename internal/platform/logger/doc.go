// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured
// JSON (or text) logging with configurable log levels, and offers an
// in-memory log buffer for tests that assert on log output.
package logger
