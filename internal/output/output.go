// Package output handles CLI output formatting including per-file status
// lines, verbose mode and progress indicators.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// Status levels controlling which per-file outcome lines are printed.
const (
	LevelAll     = "all"
	LevelSuccess = "success"
	LevelFailed  = "failed"
)

// Config holds output configuration.
type Config struct {
	Verbose     bool      // Enable verbose output
	StatusLevel string    // Which outcome lines to print: all, success or failed
	Writer      io.Writer // Output destination (default: os.Stdout)
	ErrWriter   io.Writer // Error output destination (default: os.Stderr)
	IsTTY       bool      // Whether output is a terminal
}

// Output handles formatted output with outcome filtering, verbose and
// progress support.
type Output struct {
	config          Config
	progressActive  bool
	progressTotal   int
	progressCurrent int
	progressMu      sync.Mutex
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	if config.StatusLevel == "" {
		config.StatusLevel = LevelAll
	}
	return &Output{config: config}
}

// DefaultConfig returns a Config with sensible defaults and TTY detection.
func DefaultConfig() Config {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return Config{
		StatusLevel: LevelAll,
		Writer:      os.Stdout,
		ErrWriter:   os.Stderr,
		IsTTY:       isTTY,
	}
}

// Success prints a per-file success line with a green marker.
// Suppressed when the status level is "failed".
func (o *Output) Success(format string, args ...interface{}) {
	if o.config.StatusLevel == LevelFailed {
		return
	}
	o.clearProgressLine()
	fmt.Fprint(o.config.Writer, o.marker(text.FgGreen)+" "+o.line(format, args...))
}

// Failure prints a per-file failure line with a red marker.
// Suppressed when the status level is "success".
func (o *Output) Failure(format string, args ...interface{}) {
	if o.config.StatusLevel == LevelSuccess {
		return
	}
	o.clearProgressLine()
	fmt.Fprint(o.config.Writer, o.marker(text.FgRed)+" "+o.line(format, args...))
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.clearProgressLine()
	fmt.Fprint(o.config.Writer, o.line(format, args...))
}

// Info prints an informational message (always shown).
func (o *Output) Info(format string, args ...interface{}) {
	o.clearProgressLine()
	fmt.Fprint(o.config.Writer, o.line(format, args...))
}

// Error prints an error message to stderr.
func (o *Output) Error(format string, args ...interface{}) {
	o.clearProgressLine()
	fmt.Fprint(o.config.ErrWriter, o.line(format, args...))
}

// line formats a message and guarantees a trailing newline.
func (o *Output) line(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

// marker renders the outcome dot, colored only on terminals.
func (o *Output) marker(color text.Color) string {
	if !o.config.IsTTY {
		return "●"
	}
	return color.Sprint("●")
}

// clearProgressLine clears the current progress line if active.
func (o *Output) clearProgressLine() {
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	if o.progressActive && o.config.IsTTY {
		fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", 60)+"\r")
	}
}

// StartProgress begins a progress indicator session.
// Progress is suppressed off-terminal and in verbose mode.
func (o *Output) StartProgress(total int) {
	if !o.config.IsTTY || o.config.Verbose {
		return
	}
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	o.progressActive = true
	o.progressTotal = total
	o.progressCurrent = 0
}

// UpdateProgress updates the progress indicator in place.
func (o *Output) UpdateProgress(current int, message string) {
	if !o.config.IsTTY || o.config.Verbose {
		return
	}
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	if !o.progressActive {
		return
	}
	o.progressCurrent = current
	progressMsg := fmt.Sprintf("\rProcessing file %d/%d...", current, o.progressTotal)
	if message != "" {
		progressMsg = fmt.Sprintf("\r%s %d/%d...", message, current, o.progressTotal)
	}
	fmt.Fprint(o.config.Writer, progressMsg)
}

// EndProgress clears the progress indicator.
func (o *Output) EndProgress() {
	if !o.config.IsTTY || o.config.Verbose {
		return
	}
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	if !o.progressActive {
		return
	}
	o.progressActive = false
	fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", 60)+"\r")
}

// IsVerbose returns whether verbose mode is enabled.
func (o *Output) IsVerbose() bool {
	return o.config.Verbose
}

// IsTTY returns whether the output is a terminal.
func (o *Output) IsTTY() bool {
	return o.config.IsTTY
}
