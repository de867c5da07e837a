// Package webcli contains core domain types and interfaces for the WebCLI
// shell and its in-memory filesystem
package webcli

import (
	"context"
	"time"
)

// Clock supplies wall-clock time to the filesystem and interpreter so
// timestamps and elapsed times can be pinned in tests
type Clock interface {
	Now() time.Time
}

// SystemClock is the [Clock] backed by [time.Now]
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// CommandObserver receives one call per interpreted command.
// Implementations must be safe for concurrent use across sessions.
type CommandObserver interface {
	ObserveCommand(command string, isError bool, elapsed time.Duration)
}

// ContentSource yields the initial bytes of a seeded file
type ContentSource interface {
	Content(ctx context.Context) ([]byte, error)
}

// SourceProvider is a factory for concrete [ContentSource] implementations
// generated from a raw source config (the "source" object of a node definition)
type SourceProvider interface {
	Source(raw []byte) (ContentSource, error)
}
