package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Console prints user-friendly progress to a terminal and mirrors
// every event into zerolog for debugging.
type Console struct {
	log zerolog.Logger
	out io.Writer
	// Verbose controls whether per-file changes are printed; the
	// zerolog mirror always receives them.
	Verbose bool
}

// 🏭 NewConsole creates a console reporter bound to the context logger,
// writing to stdout
func NewConsole(ctx context.Context) *Console {
	return NewConsoleWithWriter(ctx, os.Stdout)
}

// 🏭 NewConsoleWithWriter creates a console reporter with an explicit
// output writer
func NewConsoleWithWriter(ctx context.Context, out io.Writer) *Console {
	return &Console{log: *zerolog.Ctx(ctx), out: out}
}

// 📝 Headerf announces the run
func (c *Console) Headerf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	name := color.New(color.Bold, color.FgCyan).Sprint("locofilter")
	fmt.Fprintf(c.out, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	c.log.Info().Msg(msg)
}

// 📝 Stagef announces a pipeline stage boundary
func (c *Console) Stagef(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(c.out).Println(msg)
	c.log.Info().Msg(msg)
}

// 📝 Infof reports stage-level progress detail
func (c *Console) Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pterm.Info.WithWriter(c.out).Println(msg)
	c.log.Info().Msg(msg)
}

// 📝 Warnf reports a recoverable problem
func (c *Console) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(c.out).Println(msg)
	c.log.Warn().Msg(msg)
}

// 📝 FileChange reports a per-file outcome
func (c *Console) FileChange(ctx context.Context, change FileChange) {
	relPath := filepath.Base(change.Path)

	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileCopied:
		action = "Copied"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case FileWritten:
		action = "Wrote"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "📝"})
	case FileSkipped:
		action = "Skipped"
		// WithDebugger(false) so skips print whenever verbose is on,
		// without enabling pterm debug output globally
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"}).WithDebugger(false)
	case FileError:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}
	printer = printer.WithWriter(c.out)

	msg := fmt.Sprintf("%s %s", action, relPath)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Err != nil {
		printer.Println(msg)
		pterm.Error.WithWriter(c.out).Println(change.Err)
		c.log.Warn().Err(change.Err).Str("path", change.Path).Msg(msg)
		return
	}

	if c.Verbose {
		printer.Println(msg)
	}
	c.log.Debug().Str("path", change.Path).Msg(msg)
}

// 📝 Successf reports run-level success
func (c *Console) Successf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(c.out).Println(msg)
	c.log.Info().Msg(msg)
}

var _ Reporter = (*Console)(nil)
