// Package logging assembles structured slog loggers used across talkclip.
//
// It owns the console and JSON handlers, writes an optional rotating log file
// next to the console stream, and exposes context-aware helpers so stage code
// tags every line with the stage name and the run's correlation ID. A no-op
// logger is provided for tests and for wiring that must not fail.
package logging
