// Package logger writes one JSON object per line for the studentbook
// process. Command feedback goes to stdout, so entries default to stderr or a
// log file.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders entries by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError

	// levelOff is above every level an entry can carry.
	levelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "off"
	}
}

// ParseLevel maps a config value to a Level. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "none":
		return levelOff
	default:
		return LevelInfo
	}
}

// Field is one key of an entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field  { return Field{Key: key, Value: value} }
func Int(key string, value int) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration renders d in milliseconds so entries stay numeric.
func Duration(key string, d time.Duration) Field {
	return Field{Key: key + "_ms", Value: float64(d.Microseconds()) / 1000}
}

// Err records err under "error". A nil error records nothing useful but is
// allowed so callers need no branch.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// ══════════════════════════════════════════════════════════════════════════════
// ADDRESS BOOK FIELDS
// ══════════════════════════════════════════════════════════════════════════════

func Command(word string) Field       { return String("command", word) }
func Input(line string) Field         { return String("input", line) }
func Result(feedback string) Field    { return String("result", feedback) }
func PersonCount(n int) Field         { return Int("person_count", n) }
func StorageDriver(name string) Field { return String("storage_driver", name) }
func Fingerprint(sum string) Field    { return String("fingerprint", sum) }
func Component(name string) Field     { return String("component", name) }
func Latency(d time.Duration) Field   { return Duration("latency", d) }

// ══════════════════════════════════════════════════════════════════════════════
// LOGGER
// ══════════════════════════════════════════════════════════════════════════════

// reserved keys are written by the logger itself. A field using one of them
// is renamed with a "field_" prefix.
var reserved = map[string]bool{"time": true, "level": true, "msg": true}

// sink is shared by a logger and every child made with With.
type sink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// Logger writes entries at or above its level. Children made with With
// share the parent's output and lock.
type Logger struct {
	sink   *sink
	level  Level
	fields []Field
}

// Options configures New.
type Options struct {
	Output io.Writer
	Level  Level

	// Now replaces time.Now in tests.
	Now func() time.Time
}

// New creates a Logger. A nil Output means stderr.
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Logger{sink: &sink{out: opts.Output, now: opts.Now}, level: opts.Level}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(Options{Output: io.Discard, Level: levelOff})
}

// With returns a child logger that adds fields to every entry.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{sink: l.sink, level: l.level, fields: merged}
}

// CorrelationIDKey ties together the entries written for one command line.
const CorrelationIDKey = "correlation_id"

// WithCorrelationID returns a child logger tagged with id.
func (l *Logger) WithCorrelationID(id string) *Logger {
	return l.With(String(CorrelationIDKey, id))
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level && l.level < levelOff
}

func (l *Logger) write(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}

	entry := make(map[string]any, len(l.fields)+len(fields)+3)
	for _, group := range [][]Field{l.fields, fields} {
		for _, f := range group {
			key := f.Key
			if reserved[key] {
				key = "field_" + key
			}
			entry[key] = f.Value
		}
	}
	entry["time"] = l.sink.now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":%q,"msg":%q,"log_error":%q}`, level, msg, err.Error()))
	}
	data = append(data, '\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = l.sink.out.Write(data)
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(LevelError, msg, fields) }

// Debugf, Warnf and Errorf serve libraries that log through printf-style
// interfaces, such as the badger store.
func (l *Logger) Debugf(format string, args ...any) {
	if l.Enabled(LevelDebug) {
		l.write(LevelDebug, strings.TrimSpace(fmt.Sprintf(format, args...)), nil)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	l.write(LevelWarn, strings.TrimSpace(fmt.Sprintf(format, args...)), nil)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.write(LevelError, strings.TrimSpace(fmt.Sprintf(format, args...)), nil)
}
