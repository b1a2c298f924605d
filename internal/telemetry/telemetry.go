// ═══════════════════════════════════════════════════════════════════════════
// TELEMETRY — leveled logger wrapping the standard log.Logger
// ═══════════════════════════════════════════════════════════════════════════
//
// Adapted from ehrlich-b-go-ublk's internal/logging package: the same
// level-gated wrapper over stdlib log, renamed to this project's domain (the
// engine logs per-cycle stage effects at Debug and completion/flush
// summaries at Info). No third-party structured-logging library appears
// anywhere in the retrieved corpus, so this stays on the standard library —
// see DESIGN.md.
package telemetry

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level is one of the four severities this logger supports.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config configures a new Logger.
type Config struct {
	Level  Level
	Output io.Writer
}

// DefaultConfig logs Info and above to stderr.
func DefaultConfig() *Config {
	return &Config{Level: LevelInfo, Output: os.Stderr}
}

// Logger wraps a stdlib *log.Logger with a minimum level gate.
type Logger struct {
	logger *log.Logger
	level  Level
	mu     sync.Mutex
}

// New builds a Logger from cfg, falling back to DefaultConfig for a nil cfg
// or unset Output.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{logger: log.New(out, "", log.LstdFlags), level: cfg.Level}
}

func (l *Logger) log(level Level, prefix, msg string, args ...any) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("%s %s%s", prefix, msg, formatArgs(args))
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, "[DEBUG]", msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, "[INFO]", msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, "[WARN]", msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, "[ERROR]", msg, args...) }

// formatArgs renders trailing key/value pairs the way the teacher's logger
// does: "k1=v1 k2=v2", prefixed with a space, or empty if there are none.
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var out string
	for i := 0; i+1 < len(args); i += 2 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%v=%v", args[i], args[i+1])
	}
	if out == "" {
		return ""
	}
	return " " + out
}
