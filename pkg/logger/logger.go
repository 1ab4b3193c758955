// Package logger provides the logging interface used across flask-unsign.
// Implementations may log to the console or discard output entirely; the
// cracker and CLI commands receive a Logger explicitly instead of sharing
// process-wide mute state.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger defines the interface for status logging across all components.
type Logger interface {
	// Info logs an informational message (e.g., "Decoding cookie").
	Info(format string, args ...interface{})

	// Success logs a positive result (e.g., "Found secret key").
	Success(format string, args ...interface{})

	// Error logs an error message. Errors are never suppressed by
	// quiet mode.
	Error(format string, args ...interface{})

	// Write logs a message verbatim, without a status prefix.
	Write(format string, args ...interface{})

	// Close releases resources held by the logger. Safe to call
	// multiple times. Returns nil for loggers without resources.
	Close() error
}

// ConsoleLogger writes prefixed status lines to a single writer,
// typically stderr. Writes are serialized so worker goroutines can
// log concurrently.
type ConsoleLogger struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool
}

// NewConsoleLogger creates a logger writing to out. A nil out defaults
// to stderr. When quiet is true, Info and Success messages are
// discarded while Error and Write still get through.
func NewConsoleLogger(out io.Writer, quiet bool) *ConsoleLogger {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleLogger{out: out, quiet: quiet}
}

// Info logs an informational message with a [*] prefix.
func (c *ConsoleLogger) Info(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	c.print("[*] " + fmt.Sprintf(format, args...))
}

// Success logs a positive result with a [+] prefix.
func (c *ConsoleLogger) Success(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	c.print("[+] " + fmt.Sprintf(format, args...))
}

// Error logs an error message with a [!] prefix.
func (c *ConsoleLogger) Error(format string, args ...interface{}) {
	c.print("[!] " + fmt.Sprintf(format, args...))
}

// Write logs a message without a prefix, regardless of quiet mode.
func (c *ConsoleLogger) Write(format string, args ...interface{}) {
	c.print(fmt.Sprintf(format, args...))
}

func (c *ConsoleLogger) print(line string) {
	c.mu.Lock()
	fmt.Fprintln(c.out, line)
	c.mu.Unlock()
}

// Close is a no-op for ConsoleLogger.
func (c *ConsoleLogger) Close() error {
	return nil
}

// NopLogger is a logger that discards all messages.
// Useful for testing or when logging should be disabled.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Info discards the message.
func (n *NopLogger) Info(format string, args ...interface{}) {}

// Success discards the message.
func (n *NopLogger) Success(format string, args ...interface{}) {}

// Error discards the message.
func (n *NopLogger) Error(format string, args ...interface{}) {}

// Write discards the message.
func (n *NopLogger) Write(format string, args ...interface{}) {}

// Close is a no-op.
func (n *NopLogger) Close() error {
	return nil
}
