// Package report provides user-facing progress output for a filter
// run. The reporter is injected into each pipeline stage by the
// caller; components never reach for a global logger.
package report

import "context"

// 🎨 FileChangeType represents what happened to a file during the run
type FileChangeType int

const (
	FileCopied  FileChangeType = iota // copied verbatim to the output tree
	FileWritten                       // re-serialized into the output tree
	FileSkipped                       // excluded (out of range, empty, ignored)
	FileError                         // unreadable or corrupt, left behind
)

// 🖼️ FileChange is one per-file outcome worth telling the user about
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Err         error
}

// 📢 Reporter receives user-facing events from the pipeline stages
type Reporter interface {
	// Headerf announces the run
	Headerf(format string, args ...any)
	// Stagef announces a pipeline stage boundary
	Stagef(format string, args ...any)
	// Infof reports stage-level progress detail
	Infof(format string, args ...any)
	// Warnf reports a recoverable problem (a skipped file, a missing place)
	Warnf(format string, args ...any)
	// FileChange reports a per-file outcome
	FileChange(ctx context.Context, change FileChange)
	// Successf reports run-level success
	Successf(format string, args ...any)
}

// 🔇 Nop is a Reporter that discards everything; used in tests
type Nop struct{}

func (Nop) Headerf(string, ...any)                 {}
func (Nop) Stagef(string, ...any)                  {}
func (Nop) Infof(string, ...any)                   {}
func (Nop) Warnf(string, ...any)                   {}
func (Nop) FileChange(context.Context, FileChange) {}
func (Nop) Successf(string, ...any)                {}

var _ Reporter = Nop{}
