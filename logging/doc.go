// Package logging provides a tiny abstraction over slog so the reasoning core
// can depend on a minimal interface (Logger) while letting hosts plug in any
// structured logger. A NoOpLogger is used wherever logging is not configured.
package logging
