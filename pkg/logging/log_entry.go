package logging

import "context"

// LogEntry represents a structured log record with fields relevant to
// manifest loading and validation.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Pipeline fields
	ManifestPath string // The manifest being processed
	RunID        string // Identifier of the resolved run, when one exists

	// General structured data
	Fields map[string]interface{}
}

type manifestPathKeyType struct{}
type runIDKeyType struct{}

var (
	manifestPathKey = manifestPathKeyType{}
	runIDKey        = runIDKeyType{}
)

// WithManifestPath attaches the manifest path being processed to the context
// so every log emitted during its load carries it.
func WithManifestPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, manifestPathKey, path)
}

// GetManifestPath retrieves the manifest path from the context.
func GetManifestPath(ctx context.Context) (string, bool) {
	path, ok := ctx.Value(manifestPathKey).(string)
	return path, ok
}

// WithRunID attaches a resolved run identifier to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// GetRunID retrieves the run identifier from the context.
func GetRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}
