package logsvc

import (
	"sync"

	"github.com/trezcool/thk/core"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

type Entry struct {
	Level Level
	Msg   string
	Args  []interface{}
}

// MemoryLogger keeps every entry in memory. Fatal does not exit.
// Used by tests.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

var _ core.Logger = (*MemoryLogger)(nil)

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) log(lvl Level, msg string, args []interface{}) {
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Level: lvl, Msg: msg, Args: args})
	l.mu.Unlock()
}

// Entries returns the logged entries, filtered by level when any is given.
func (l *MemoryLogger) Entries(levels ...Level) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if len(levels) == 0 || hasLevel(levels, e.Level) {
			entries = append(entries, e)
		}
	}
	return entries
}

func (l *MemoryLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args) }
func (l *MemoryLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args) }
func (l *MemoryLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args) }
func (l *MemoryLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args) }
func (l *MemoryLogger) Fatal(msg string, args ...interface{}) { l.log(LevelFatal, msg, args) }

func hasLevel(levels []Level, lvl Level) bool {
	for _, l := range levels {
		if l == lvl {
			return true
		}
	}
	return false
}
